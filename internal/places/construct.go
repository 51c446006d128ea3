package places

import (
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/localsight/localsight/internal/model"
)

// providerResponse mirrors the Places-search provider's JSON envelope. The
// provider itself is an external collaborator; only its payload shape is
// known here.
type providerResponse struct {
	Places []providerPlace `json:"places"`
}

type providerPlace struct {
	Name        string `json:"name"` // resource name, "places/<id>"
	DisplayName struct {
		Text string `json:"text"`
	} `json:"displayName"`
	FormattedAddress string `json:"formattedAddress"`
	Location         struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	Rating              float64  `json:"rating"`
	UserRatingCount     int      `json:"userRatingCount"`
	WebsiteURI          string   `json:"websiteUri"`
	Types               []string `json:"types"`
	NationalPhoneNumber string   `json:"nationalPhoneNumber"`
	RegularOpeningHours struct {
		WeekdayDescriptions []string `json:"weekdayDescriptions"`
	} `json:"regularOpeningHours"`
}

// FromProviderJSON decodes a raw provider payload into unscored Place
// values. When userBusinessName is non-empty, the place whose name closely
// matches it is flagged IsUserMatch. Callers run the result through Annotate
// to fill the scoring fields.
func FromProviderJSON(data []byte, userBusinessName string) ([]model.Place, error) {
	var resp providerResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, eris.Wrap(err, "places: decode provider payload")
	}

	out := make([]model.Place, 0, len(resp.Places))
	for _, pp := range resp.Places {
		p := model.Place{
			ID:            strings.TrimPrefix(pp.Name, "places/"),
			Name:          pp.DisplayName.Text,
			Address:       pp.FormattedAddress,
			Latitude:      pp.Location.Latitude,
			Longitude:     pp.Location.Longitude,
			Rating:        pp.Rating,
			ReviewCount:   pp.UserRatingCount,
			Phone:         pp.NationalPhoneNumber,
			WebsiteURL:    pp.WebsiteURI,
			Types:         strings.Join(pp.Types, ", "),
			OpenHoursText: strings.Join(pp.RegularOpeningHours.WeekdayDescriptions, "\n"),
		}
		if userBusinessName != "" {
			p.IsUserMatch = IsCloseMatch(userBusinessName, p.Name)
		}
		out = append(out, p)
	}
	return out, nil
}
