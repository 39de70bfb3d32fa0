package glrm

import (
	"github.com/DEVESHTARASIA/h2o-3/pkg/errors"
)

// Schema describes the expanded column layout of a dataset: the
// categorical features come first, each occupying one expanded column
// per level, followed by the numeric features with one column each.
// Predictions use the original (non-expanded) feature order:
// categorical features 0..Cats()-1, then numeric features.
type Schema struct {
	catLevels  []int
	catOffsets []int // cumulative; len = len(catLevels)+1
	numCols    int
}

// NewSchema builds a schema from the per-categorical-feature level
// counts and the number of numeric features.
func NewSchema(catLevels []int, numCols int) (*Schema, error) {
	if numCols < 0 {
		return nil, errors.NewValueError("NewSchema", "numeric column count must be nonnegative")
	}
	if len(catLevels)+numCols == 0 {
		return nil, errors.NewValueError("NewSchema", "schema must declare at least one feature")
	}
	offsets := make([]int, len(catLevels)+1)
	for j, levels := range catLevels {
		if levels < 1 {
			return nil, errors.NewValueError("NewSchema", "every categorical feature needs at least one level")
		}
		offsets[j+1] = offsets[j] + levels
	}
	return &Schema{
		catLevels:  append([]int(nil), catLevels...),
		catOffsets: offsets,
		numCols:    numCols,
	}, nil
}

// Features returns the original (non-expanded) feature count m.
func (s *Schema) Features() int { return len(s.catLevels) + s.numCols }

// Cats returns the number of categorical features.
func (s *Schema) Cats() int { return len(s.catLevels) }

// Nums returns the number of numeric features.
func (s *Schema) Nums() int { return s.numCols }

// Levels returns the level count of categorical feature j.
func (s *Schema) Levels(j int) int { return s.catLevels[j] }

// CatOffset returns the first expanded column of categorical feature j.
func (s *Schema) CatOffset(j int) int { return s.catOffsets[j] }

// NumOffset returns the expanded column of numeric feature i.
func (s *Schema) NumOffset(i int) int { return s.catOffsets[len(s.catLevels)] + i }

// ExpandedWidth returns the expanded column count m_expanded.
func (s *Schema) ExpandedWidth() int { return s.catOffsets[len(s.catLevels)] + s.numCols }
