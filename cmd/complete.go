package cmd

import (
	"strings"

	"github.com/etnz/baskets/docs"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Completion describes the bsk command line for shell completion.
//
// Basket names and tickers are predicted from the content, resolved like the
// commands do.
func Completion() *complete.Command {
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"content":  predict.Files("*.yaml"),
			"currency": predict.Set{"INR", "USD", "EUR", "GBP"},
			"amount":   predict.Something,
			"code":     predict.Something,
		},
		Sub: map[string]*complete.Command{
			"run": {
				Flags: map[string]complete.Predictor{
					"json":   predict.Nothing,
					"html":   predict.Nothing,
					"strict": predict.Nothing,
					"q":      predict.Set{"$.view", "$.active[*].name", "$.archived[*].name", "$.basket.stocks[*].weight"},
				},
				Args: predict.Files("*.jsonl"),
			},
			"baskets": {},
			"basket":  {Args: complete.PredictFunc(predictBaskets)},
			"stock":   {Args: complete.PredictFunc(predictTickers)},
			"compose": {Args: complete.PredictFunc(predictFundings)},
			"topic": {
				Flags: map[string]complete.Predictor{"list": predict.Nothing},
				Args:  complete.PredictFunc(predictTopics),
			},
		},
	}
}

func predictBaskets(prefix string) []string {
	content, err := loadContent()
	if err != nil {
		return nil
	}
	var names []string
	for _, b := range content.Baskets {
		names = append(names, b.Name)
	}
	return withPrefix(names, prefix)
}

func predictTickers(prefix string) []string {
	content, err := loadContent()
	if err != nil {
		return nil
	}
	return withPrefix(content.Stocks.Tickers(), strings.ToUpper(prefix))
}

// predictFundings completes a ticker followed by the equal sign.
func predictFundings(prefix string) []string {
	if strings.Contains(prefix, "=") {
		return nil
	}
	var out []string
	for _, t := range predictTickers(prefix) {
		out = append(out, t+"=")
	}
	return out
}

func predictTopics(prefix string) []string {
	topics, err := docs.GetAllTopics()
	if err != nil {
		return nil
	}
	return withPrefix(topics, prefix)
}

func withPrefix(options []string, prefix string) []string {
	var out []string
	for _, o := range options {
		if strings.HasPrefix(o, prefix) {
			out = append(out, o)
		}
	}
	return out
}
