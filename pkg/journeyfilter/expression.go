package journeyfilter

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
)

// ExpressionFilter keeps the journeys for which the compiled expression is true
type ExpressionFilter struct {
	Name       string
	Expression string

	program *vm.Program
}

func expressionEnvironment(journey *ctdf.Journey) map[string]any {
	return map[string]any{
		"duration":            journey.Duration,
		"nb_transfers":        journey.NbTransfers,
		"departure_date_time": journey.DepartureDateTime,
		"arrival_date_time":   journey.ArrivalDateTime,
		"tags":                []string(journey.Tags),
		"type":                journey.Type,
		"nb_sections":         len(journey.Sections),
		"fallback_duration":   FallbackDuration(journey),
	}
}

func NewExpressionFilter(name string, expression string) (*ExpressionFilter, error) {
	program, err := expr.Compile(expression, expr.Env(expressionEnvironment(&ctdf.Journey{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile filter %s: %w", name, err)
	}

	return &ExpressionFilter{
		Name:       name,
		Expression: expression,
		program:    program,
	}, nil
}

func (f *ExpressionFilter) Message() string {
	return f.Name
}

func (f *ExpressionFilter) Keep(journey *ctdf.Journey) bool {
	output, err := expr.Run(f.program, expressionEnvironment(journey))
	if err != nil {
		log.Error().Err(err).Str("filter", f.Name).Str("journey", journey.InternalID).Msg("Failed to evaluate filter")
		return true
	}

	keep, ok := output.(bool)
	return !ok || keep
}
