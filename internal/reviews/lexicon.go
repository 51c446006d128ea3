package reviews

import (
	"embed"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed data/lexicon.yaml data/stopwords.yaml
var dataFS embed.FS

var (
	lexicon   map[string]int
	stopwords map[string]struct{}
)

func init() {
	var err error
	lexicon, stopwords, err = loadData()
	if err != nil {
		panic(err)
	}
}

func loadData() (map[string]int, map[string]struct{}, error) {
	var lex struct {
		Words map[string]int `yaml:"words"`
	}
	raw, err := dataFS.ReadFile("data/lexicon.yaml")
	if err != nil {
		return nil, nil, eris.Wrap(err, "reviews: read lexicon")
	}
	if err := yaml.Unmarshal(raw, &lex); err != nil {
		return nil, nil, eris.Wrap(err, "reviews: parse lexicon")
	}

	var sw struct {
		Words []string `yaml:"words"`
	}
	raw, err = dataFS.ReadFile("data/stopwords.yaml")
	if err != nil {
		return nil, nil, eris.Wrap(err, "reviews: read stopwords")
	}
	if err := yaml.Unmarshal(raw, &sw); err != nil {
		return nil, nil, eris.Wrap(err, "reviews: parse stopwords")
	}

	stops := make(map[string]struct{}, len(sw.Words))
	for _, w := range sw.Words {
		stops[w] = struct{}{}
	}
	return lex.Words, stops, nil
}
