package offshore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression over the JSON table of managers, as
// written by EncodeJSON. For instance
//
//	$[?(@.state == "SP")].name
//	$[0:5].market_value
func Query(ctx context.Context, managers []AggregatedManager, path string) (any, error) {
	eval, err := jsonpath.New(path)
	if err != nil {
		return nil, fmt.Errorf("invalid path %q: %w", path, err)
	}
	var b bytes.Buffer
	if err := EncodeJSON(&b, managers); err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(b.Bytes(), &jobj); err != nil {
		return nil, err
	}
	jval, err := eval(ctx, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return jval, nil
}
