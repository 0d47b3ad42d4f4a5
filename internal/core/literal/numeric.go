package literal

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/agenthands/literalkg/internal/core/model"
	"github.com/agenthands/literalkg/internal/logger"
)

// ErrNonFinite marks a numeric literal that parses to NaN or an infinity.
var ErrNonFinite = errors.New("value is not finite")

// Epsilon keeps min-max normalisation finite on constant columns.
const Epsilon = 1e-8

// NumericOptions configures AssembleNumeric.
type NumericOptions struct {
	Policy        model.FailurePolicy
	ProgressEvery int
}

// AssembleNumeric scatters numeric records into an entities x attributes
// matrix and its presence matrix, then min-max normalises each column.
//
// When several records target the same cell the last one in table order wins.
// Normalisation runs over the whole column, zero-filled absent cells
// included, so a sparse column's minimum is usually 0.
func AssembleNumeric(records []model.Literal, entities, attrs *model.Vocabulary, opts NumericOptions) (*model.NumericLiterals, error) {
	groups, err := groupByEntity(model.TableNumeric, records, entities, attrs)
	if err != nil {
		return nil, err
	}

	values := model.NewMatrix(entities.Len(), attrs.Len())
	presence := model.NewMatrix(entities.Len(), attrs.Len())
	raw := make([]float64, entities.Len()*attrs.Len())

	progress := logger.NewProgress("numeric literals", entities.Len(), opts.ProgressEvery)
	for e, group := range groups {
		for _, c := range group {
			v, err := strconv.ParseFloat(strings.TrimSpace(c.value), 64)
			if err == nil && (math.IsNaN(v) || math.IsInf(v, 0)) {
				err = ErrNonFinite
			}
			if err != nil {
				perr := &model.LiteralParseError{Table: model.TableNumeric, Row: c.row, Value: c.value, Err: err}
				if opts.Policy == model.PolicySkip {
					logger.Warn("skipping numeric literal", "err", perr)
					continue
				}
				return nil, perr
			}
			raw[e*attrs.Len()+c.attr] = v
			presence.Set(e, c.attr, 1)
		}
		progress.Step()
	}
	progress.Finish()

	normalize(raw, entities.Len(), attrs.Len(), values)

	return &model.NumericLiterals{
		Attrs:    attrs,
		Values:   values,
		Presence: presence,
	}, nil
}

// normalize writes (v - min) / (max - min + Epsilon) per column of raw into out.
func normalize(raw []float64, rows, cols int, out *model.Matrix) {
	for c := 0; c < cols; c++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for r := 0; r < rows; r++ {
			v := raw[r*cols+c]
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
		den := hi - lo + Epsilon
		for r := 0; r < rows; r++ {
			out.Set(r, c, float32((raw[r*cols+c]-lo)/den))
		}
	}
}
