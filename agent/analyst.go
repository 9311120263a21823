package agent

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/etnz/offshore"
	"github.com/etnz/offshore/docs"
	"github.com/etnz/offshore/renderer"
	md "github.com/nao1215/markdown"
	"google.golang.org/genai"
)

const model = "gemini-2.5-pro"

// NewAnalyst returns an expert answering questions about an analysis.
func NewAnalyst(a *offshore.Analysis) *Expert {
	lib := Tools(a)
	return &Expert{
		Name:      "Analyst",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an analyst of the offshore assets held by Brazilian investment funds,
			as published by the CVM. The user has ranked the fund managers (or administrators)
			by the market value of their funds' foreign positions.

			Use the tools to read the ranking, the funds of a manager and the documentation
			before answering. Amounts are in ` + a.Currency + `. Quote figures from the tools,
			never estimate them. Answer in Markdown, briefly.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Tools returns the functions available to the analyst over a.
func Tools(a *offshore.Analysis) []*Func {
	return []*Func{
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "report",
				Description: "Return the ranking report: top entities, summary statistics, concentration and geographic distribution.",
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				n, err := intArg(args, "top")
				if err != nil {
					return "", err
				}
				return renderer.RenderMarkdown(renderer.NewReport(a, renderer.Options{TopN: n, Diagnostics: true})), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "view",
				Description: "Filter and sort the ranked table. Returns a Markdown table with the filtered total.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"state":   {Type: genai.TypeString, Description: "Two letter state code, e.g. SP."},
						"city":    {Type: genai.TypeString, Description: "City name."},
						"query":   {Type: genai.TypeString, Description: "Part of the entity name."},
						"min":     {Type: genai.TypeNumber, Description: "Minimum market value."},
						"sort":    {Type: genai.TypeString, Description: "One of rank, name, city, state, assets, cost, funds."},
						"reverse": {Type: genai.TypeBoolean, Description: "Reverse the sort order."},
						"limit":   {Type: genai.TypeInteger, Description: "Maximum number of rows, 20 by default."},
					},
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				f, err := viewFilter(args, a.Currency)
				if err != nil {
					return "", err
				}
				return renderer.RenderView(offshore.View(a.Managers, f, a.Currency)), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name: "query",
				Description: `Evaluate a JSONPath expression over the ranked table, an array of objects with fields
rank, id, name, city, state, market_value, cost_value, funds, percent and reference_date.
Returns JSON. Example: $[?(@.state == "SP")].name`,
				Parameters: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"path"},
					Properties: map[string]*genai.Schema{
						"path": {Type: genai.TypeString, Description: "JSONPath expression."},
					},
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				path, err := stringArg(args, "path")
				if err != nil {
					return "", err
				}
				jval, err := offshore.Query(ctx, a.Managers, path)
				if err != nil {
					return "", err
				}
				out, err := json.Marshal(jval)
				return string(out), err
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "funds",
				Description: "List the funds aggregated into the entities whose name contains query.",
				Parameters: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"query"},
					Properties: map[string]*genai.Schema{
						"query": {Type: genai.TypeString, Description: "Part of the entity name."},
					},
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				q, _ := args["query"].(string)
				if strings.TrimSpace(q) == "" {
					return "", fmt.Errorf("query is required")
				}
				return fundsTable(a, q), nil
			},
		},
		{
			Decl: &genai.FunctionDeclaration{
				Name:        "topic",
				Description: "Return the documentation on a topic. Available topics:\n" + docs.Index(),
				Parameters: &genai.Schema{
					Type:     genai.TypeObject,
					Required: []string{"topic"},
					Properties: map[string]*genai.Schema{
						"topic": {Type: genai.TypeString, Description: "Topic name, or * for all."},
					},
				},
			},
			Func: func(ctx context.Context, args map[string]any) (string, error) {
				topic, _ := args["topic"].(string)
				return docs.GetTopic(topic)
			},
		},
	}
}

func stringArg(args map[string]any, name string) (string, error) {
	v, ok := args[name]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", name, v)
	}
	return strings.TrimSpace(s), nil
}

// intArg reads an integer argument, decoded from JSON as a float64.
func intArg(args map[string]any, name string) (int, error) {
	switch v := args[name].(type) {
	case nil:
		return 0, nil
	case float64:
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", name, v)
	}
}

func viewFilter(args map[string]any, currency string) (offshore.Filter, error) {
	var f offshore.Filter
	state, err := stringArg(args, "state")
	if err != nil {
		return f, err
	}
	if state != "" {
		f.States = []string{state}
	}
	city, err := stringArg(args, "city")
	if err != nil {
		return f, err
	}
	if city != "" {
		f.Cities = []string{city}
	}
	if f.Query, err = stringArg(args, "query"); err != nil {
		return f, err
	}
	switch v := args["min"].(type) {
	case nil:
	case float64:
		f.MinMarketValue = offshore.M(v, currency)
	default:
		return f, fmt.Errorf("min must be a number, got %T", v)
	}
	sort, err := stringArg(args, "sort")
	if err != nil {
		return f, err
	}
	if f.SortBy, err = offshore.ParseColumn(sort); err != nil {
		return f, err
	}
	f.Reverse, _ = args["reverse"].(bool)
	if f.Limit, err = intArg(args, "limit"); err != nil {
		return f, err
	}
	if f.Limit <= 0 {
		f.Limit = renderer.DefaultTopN
	}
	return f, nil
}

func fundsTable(a *offshore.Analysis, query string) string {
	q := offshore.NormalizeName(query)
	var rows [][]string
	for _, f := range a.Funds {
		key, _ := offshore.EntityKey(f)
		var owner *offshore.AggregatedManager
		for i := range a.Managers {
			if a.Managers[i].Key == key {
				owner = &a.Managers[i]
				break
			}
		}
		if owner == nil || !strings.Contains(offshore.NormalizeName(owner.Name), q) {
			continue
		}
		rows = append(rows, []string{
			owner.Name,
			f.Fund.FundID.Format(),
			offshore.DisplayName(offshore.NotAvailable, f.Fund.Name),
			f.Fund.MarketValue.String(),
		})
	}
	if len(rows) == 0 {
		return fmt.Sprintf("No fund found for %q.", query)
	}
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.Table(md.TableSet{
		Header: []string{"Entity", "Fund ID", "Fund", "Assets"},
		Rows:   rows,
	})
	return doc.String()
}
