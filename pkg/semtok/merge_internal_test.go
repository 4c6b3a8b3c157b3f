package semtok

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOutcomes(t *testing.T) {
	kw := func(start, end int, o origin) candidate {
		return candidate{tok: NewToken(0, start, end, CategoryKeyword), origin: o}
	}
	ty := func(start, end int, o origin) candidate {
		return candidate{tok: NewToken(0, start, end, CategoryType), origin: o}
	}

	tests := []struct {
		name     string
		last     candidate
		next     candidate
		outcome  outcome
		wantLast *Token
		wantNext *Token
		wantTail *Token
	}{
		{
			name:     "identical",
			last:     kw(0, 3, originPrimary),
			next:     kw(0, 3, originSecondary),
			outcome:  outcomeDropped,
			wantLast: &Token{Start: 0, Length: 3, Category: CategoryKeyword},
		},
		{
			name:     "disjoint",
			last:     kw(0, 3, originPrimary),
			next:     ty(3, 5, originSecondary),
			outcome:  outcomeKept,
			wantLast: &Token{Start: 0, Length: 3, Category: CategoryKeyword},
			wantNext: &Token{Start: 3, Length: 2, Category: CategoryType},
		},
		{
			name:     "same class overlap",
			last:     kw(0, 3, originSecondary),
			next:     kw(2, 6, originPrimary),
			outcome:  outcomeExtended,
			wantLast: &Token{Start: 0, Length: 6, Category: CategoryKeyword},
		},
		{
			name:     "primary cuts last and leaves a tail",
			last:     kw(0, 8, originSecondary),
			next:     ty(2, 5, originPrimary),
			outcome:  outcomeTruncated,
			wantLast: &Token{Start: 0, Length: 2, Category: CategoryKeyword},
			wantNext: &Token{Start: 2, Length: 3, Category: CategoryType},
			wantTail: &Token{Start: 5, Length: 3, Category: CategoryKeyword},
		},
		{
			name:     "primary removes last entirely",
			last:     kw(2, 4, originSecondary),
			next:     ty(2, 4, originPrimary),
			outcome:  outcomeTruncated,
			wantNext: &Token{Start: 2, Length: 2, Category: CategoryType},
		},
		{
			name:     "secondary loses its head",
			last:     kw(0, 4, originPrimary),
			next:     ty(2, 7, originSecondary),
			outcome:  outcomeTruncated,
			wantLast: &Token{Start: 0, Length: 4, Category: CategoryKeyword},
			wantNext: &Token{Start: 4, Length: 3, Category: CategoryType},
		},
		{
			name:     "secondary swallowed",
			last:     kw(0, 9, originPrimary),
			next:     ty(2, 7, originSecondary),
			outcome:  outcomeDropped,
			wantLast: &Token{Start: 0, Length: 9, Category: CategoryKeyword},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolve(tt.last, tt.next)
			assert.Equal(t, tt.outcome, res.outcome)

			if tt.wantLast == nil {
				assert.True(t, res.dropLast, "last should be dropped")
			} else {
				require.False(t, res.dropLast, "last should be kept")
				assert.Equal(t, *tt.wantLast, res.last.tok)
				assert.Equal(t, tt.last.origin, res.last.origin, "last keeps its origin")
			}

			if tt.wantNext == nil {
				assert.False(t, res.accept)
			} else {
				require.True(t, res.accept)
				assert.Equal(t, *tt.wantNext, res.next.tok)
			}

			if tt.wantTail == nil {
				assert.Nil(t, res.tail)
			} else {
				require.NotNil(t, res.tail)
				assert.Equal(t, *tt.wantTail, res.tail.tok)
				assert.Equal(t, originSecondary, res.tail.origin)
			}
		})
	}
}
