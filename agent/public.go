package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/etnz/histvar"
	"github.com/etnz/histvar/date"
	"github.com/etnz/histvar/docs"
	"github.com/etnz/histvar/renderer"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// newFacilitator creates the expert in charge of the conversation.
func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user is here to understand the downside risk of a stock portfolio: how much it can
			lose on a bad day, and how that risk moved over time. The Analyst computes the figures,
			the Researcher explains what happened in the markets.

			Devise a plan of questions to ask each expert and come up with the best response to the
			user's request. Always report VaR figures with their confidence level and window.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewResearcher creates the expert for market context, grounded in search.
func NewResearcher() *Expert {
	return &Expert{
		Name: "Researcher",
		Description: `This is an expert market researcher,
		very well aware of financial products and institutions,
		and of the latest news about companies and funds.
		Ask the Researcher whenever you need recent or grounding information,
		for instance to explain why a portfolio's risk spiked in some period.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert in financial markets. You can search and find about anything related
			to financial institutions, companies, markets, funds etc. You leverage Google Search to
			ground your assertions in a solid truth.
			You can get the latest news too, and you know how to relate them to the user's request.
				`}}},
		},
	}
}

// NewAnalyst creates the expert running VaR analyses against live prices.
func NewAnalyst(src histvar.Source) *Expert {
	lib := []Function{varTool(src), pricesTool(src)}

	return &Expert{
		Name: "Analyst",
		Description: `This is the risk Analyst. He computes historical Value at Risk figures
		for any weighted stock portfolio: full period VaR, and rolling window VaR to show
		how the risk moved over time. He can also check what price data is available.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a risk analyst computing historical Value at Risk.
				You know how to use the tools to run an analysis, and you read the report for the user:
				a VaR of x% at confidence c means that on all but the worst (1-c) of past days,
				the portfolio lost less than x% of its value in a day.
				Check price availability first when a run fails on missing data, and say which
				ticker or date range is the problem.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function.
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

func must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// failure wraps an error message into a function response.
func failure(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

// varTool runs a VaR analysis and returns the markdown report.
func varTool(src histvar.Source) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "RunVaR",
			Description: `RunVaR computes the historical Value at Risk of a weighted stock portfolio
			over a range of past daily prices, at one or more confidence levels, both over the full
			period and over rolling windows. It returns a markdown report.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"weights": {
						Type:        genai.TypeString,
						Description: `The portfolio as TICKER=WEIGHT pairs, comma separated, weights summing to 1. For instance "MC.PA=0.6,OR.PA=0.4". For an equal-weighted portfolio, pass 'tickers' instead.`,
					},
					"tickers": {
						Type:        genai.TypeString,
						Description: `Comma separated tickers for an equal-weighted portfolio, e.g. "MC.PA,OR.PA". Ignored when 'weights' is given.`,
					},
					"from": {
						Type: genai.TypeString,
						Description: `Start of the price range. Defaults to five years ago.
						It uses a flexible date format based on YYYY-MM-DD:

						` + must(docs.GetTopic("dates")),
					},
					"to": {
						Type:        genai.TypeString,
						Description: `End of the price range, same format as 'from'. Defaults to today.`,
					},
					"window": {
						Type:        genai.TypeString,
						Description: `Rolling window as a calendar span like "2y", "6m" or "90d". Defaults to 2y.`,
					},
					"step": {
						Type:        genai.TypeString,
						Description: `Rolling step: day, week, month, quarter or year. Defaults to day.`,
					},
					"confidences": {
						Type:        genai.TypeString,
						Description: `Comma separated confidence levels in (0,1), e.g. "0.95,0.99". Defaults to 0.90, 0.95 and 0.99.`,
					},
					"notional": {
						Type:        genai.TypeNumber,
						Description: `Portfolio value, to express the VaR in currency. Defaults to 100000.`,
					},
					"currency": {
						Type:        genai.TypeString,
						Description: `Currency code of the notional, e.g. "EUR" or "USD". Defaults to EUR.`,
					},
				},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown report with the portfolio, the full period VaR per confidence level, a rolling VaR summary, and return statistics.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			cfg, err := parseConfig(args)
			if err != nil {
				return failure(id, "RunVaR", err)
			}
			report, err := histvar.NewVaRReport(src, cfg)
			if err != nil {
				return failure(id, "RunVaR", err)
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "RunVaR",
				Response: map[string]any{
					"output": renderer.VaRMarkdown(report),
				},
			}
		},
	}
}

// pricesTool reports what daily prices the source can serve.
func pricesTool(src histvar.Source) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Prices",
			Description: `Prices checks what daily close prices are available for a list of tickers
			over a date range, and reports the coverage per ticker: first date, last date, count.
			Use it to diagnose missing data before or after a VaR run.`,
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"tickers": {
						Type:        genai.TypeString,
						Description: `Comma separated tickers, e.g. "MC.PA,OR.PA".`,
					},
					"from": {
						Type: genai.TypeString,
						Description: `Start of the range. Defaults to five years ago.

						` + must(docs.GetTopic("dates")),
					},
					"to": {
						Type:        genai.TypeString,
						Description: `End of the range, same format. Defaults to today.`,
					},
				},
				Required: []string{"tickers"},
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown table with one row per ticker: first date, last date, and number of prices.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			tickers := splitTickers(argString(args, "tickers"))
			if len(tickers) == 0 {
				return failure(id, "Prices", fmt.Errorf("no tickers given"))
			}
			r, err := parseRange(args)
			if err != nil {
				return failure(id, "Prices", err)
			}
			panel, err := src.Prices(tickers, r)
			if err != nil {
				return failure(id, "Prices", err)
			}

			var b strings.Builder
			fmt.Fprintln(&b, "| Ticker | First | Last | Prices |")
			fmt.Fprintln(&b, "|:---|:---|:---|---:|")
			for _, t := range tickers {
				h := panel.Series(t)
				if h == nil || h.Len() == 0 {
					fmt.Fprintf(&b, "| %s | - | - | 0 |\n", t)
					continue
				}
				first, _ := h.First()
				last, _ := h.Latest()
				fmt.Fprintf(&b, "| %s | %s | %s | %d |\n", t, first, last, h.Len())
			}
			return &genai.FunctionResponse{
				ID:   id,
				Name: "Prices",
				Response: map[string]any{
					"output": b.String(),
				},
			}
		},
	}
}

// argString reads an optional string argument, "" when absent.
func argString(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return strings.TrimSpace(s)
}

func splitTickers(str string) []string {
	var tickers []string
	for _, t := range strings.Split(str, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}

// parseRange reads the from/to arguments, defaulting to the last 5 years.
func parseRange(args map[string]any) (date.Range, error) {
	r := date.Range{From: date.Today().AddYears(-5), To: date.Today()}
	if s := argString(args, "from"); s != "" {
		d, err := date.Parse(s)
		if err != nil {
			return r, fmt.Errorf("argument 'from': %w", err)
		}
		r.From = d
	}
	if s := argString(args, "to"); s != "" {
		d, err := date.Parse(s)
		if err != nil {
			return r, fmt.Errorf("argument 'to': %w", err)
		}
		r.To = d
	}
	return r, nil
}

// parseConfig builds an analysis config from tool arguments, leaving the
// unset knobs to their defaults.
func parseConfig(args map[string]any) (histvar.Config, error) {
	var cfg histvar.Config
	var err error

	if s := argString(args, "weights"); s != "" {
		if cfg.Weights, err = histvar.ParseWeights(s); err != nil {
			return cfg, err
		}
		for t := range cfg.Weights {
			cfg.Tickers = append(cfg.Tickers, t)
		}
		sort.Strings(cfg.Tickers)
	} else {
		cfg.Tickers = splitTickers(argString(args, "tickers"))
	}

	if cfg.Range, err = parseRange(args); err != nil {
		return cfg, err
	}
	if s := argString(args, "window"); s != "" {
		if cfg.Window, err = date.ParseSpan(s); err != nil {
			return cfg, err
		}
	}
	if s := argString(args, "step"); s != "" {
		if cfg.Step, err = date.ParsePeriod(s); err != nil {
			return cfg, err
		}
	}
	if s := argString(args, "confidences"); s != "" {
		if cfg.Confidences, err = histvar.ParseConfidences(s); err != nil {
			return cfg, err
		}
	}
	notional, currency := 100000.0, "EUR"
	if v, ok := args["notional"].(float64); ok {
		notional = v
	}
	if s := argString(args, "currency"); s != "" {
		currency = strings.ToUpper(s)
	}
	cfg.Notional = histvar.M(notional, currency)
	return cfg, nil
}
