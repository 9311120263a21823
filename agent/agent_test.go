package agent

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/etnz/offshore"
	"github.com/google/go-cmp/cmp"
	"google.golang.org/genai"
)

func analysis() *offshore.Analysis {
	brl := func(v float64) offshore.Money { return offshore.M(v, "BRL") }
	alpha := offshore.FundRegistryEntry{FundID: "11111111000111", FundName: "ALPHA FIC", ManagerID: "22222222000122", ManagerName: "Alpha Gestora"}
	beta := offshore.FundRegistryEntry{FundID: "33333333000133", FundName: "BETA FIA", ManagerID: "44444444000144", ManagerName: "Beta Capital"}
	funds := []offshore.ManagedFund{
		{Fund: offshore.FundAggregate{FundID: "11111111000111", Name: "ALPHA FIC", MarketValue: brl(300)}, Registry: &alpha},
		{Fund: offshore.FundAggregate{FundID: "33333333000133", Name: "BETA FIA", MarketValue: brl(100)}, Registry: &beta},
	}
	managers := offshore.Rank(offshore.AggregateByManager(funds, "BRL", offshore.DefaultPlaceholder), "BRL")
	managers[0].City, managers[0].State = "São Paulo", "SP"
	managers[1].City, managers[1].State = "Rio de Janeiro", "RJ"
	return &offshore.Analysis{
		Managers: managers,
		Funds:    funds,
		Total:    brl(400),
		Currency: "BRL",
	}
}

func call(t *testing.T, name string, args map[string]any) map[string]any {
	t.Helper()
	lib := NewLibrary(Tools(analysis()))
	resp := lib(context.Background(), &genai.FunctionCall{ID: "1", Name: name, Args: args})
	if resp.ID != "1" || resp.Name != name {
		t.Errorf("response = %s/%s, want 1/%s", resp.ID, resp.Name, name)
	}
	return resp.Response
}

func TestView(t *testing.T) {
	resp := call(t, "view", map[string]any{"state": "rj"})
	out, _ := resp["output"].(string)
	if !strings.Contains(out, "Beta Capital") {
		t.Errorf("view(state=rj) = %q, want Beta Capital", out)
	}
	if strings.Contains(out, "Alpha Gestora") {
		t.Errorf("view(state=rj) = %q, want no Alpha Gestora", out)
	}
}

func TestView_BadSort(t *testing.T) {
	resp := call(t, "view", map[string]any{"sort": "nope"})
	if _, ok := resp["error"]; !ok {
		t.Errorf("view(sort=nope) = %v, want an error", resp)
	}
}

func TestFunds(t *testing.T) {
	resp := call(t, "funds", map[string]any{"query": "alpha"})
	out, _ := resp["output"].(string)
	for _, want := range []string{"ALPHA FIC", "11.111.111/0001-11"} {
		if !strings.Contains(out, want) {
			t.Errorf("funds(alpha) = %q, want %q", out, want)
		}
	}
	if strings.Contains(out, "BETA FIA") {
		t.Errorf("funds(alpha) = %q, want no BETA FIA", out)
	}
}

func TestQueryTool(t *testing.T) {
	resp := call(t, "query", map[string]any{"path": "$[*].name"})
	if got, want := resp["output"], `["Alpha Gestora","Beta Capital"]`; got != want {
		t.Errorf("query = %v, want %v", got, want)
	}
}

func TestUnknownFunction(t *testing.T) {
	resp := call(t, "nope", nil)
	if got, want := resp["error"], "unknown function nope"; got != want {
		t.Errorf("error = %v, want %v", got, want)
	}
}

func TestDeclarations(t *testing.T) {
	var got []string
	for _, d := range NewDeclaration(Tools(analysis())) {
		got = append(got, d.Name)
	}
	want := []string{"report", "view", "query", "funds", "topic"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("NewDeclaration() mismatch (-want +got):\n%s", diff)
	}
}

func TestViewFilter(t *testing.T) {
	f, err := viewFilter(map[string]any{"min": 150.0, "sort": "assets", "reverse": true, "limit": 1.0}, "BRL")
	if err != nil {
		t.Fatalf("viewFilter() error = %v", err)
	}
	if !f.MinMarketValue.Equal(offshore.M(150, "BRL")) || f.SortBy != offshore.ColumnMarketValue || !f.Reverse || f.Limit != 1 {
		t.Errorf("viewFilter() = %+v", f)
	}
	if _, err := viewFilter(map[string]any{"min": "a lot"}, "BRL"); err == nil {
		t.Errorf("viewFilter(min=string) succeeded, want an error")
	}
}

func TestRun_Bye(t *testing.T) {
	var out bytes.Buffer
	a := New(&out, strings.NewReader("bye\n"), &Expert{Name: "test", chat: &genai.Chat{}})
	if err := a.Run(context.Background(), nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.HasSuffix(out.String(), prompt) {
		t.Errorf("Run() output = %q, want it to end with the prompt", out.String())
	}
}

func TestAsk_NotStarted(t *testing.T) {
	e := &Expert{Name: "test"}
	if _, err := e.Ask(context.Background(), &genai.Part{Text: "hi"}); err == nil {
		t.Errorf("Ask() succeeded on a chat that was never started")
	}
}
