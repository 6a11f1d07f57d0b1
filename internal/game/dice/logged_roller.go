package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger to provide logged dice rolling.
// All rolls are logged at debug level with expression, dice values, modifier, and total.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that rolls with src and logs each roll to logger.
//
// Precondition: src must be non-nil; a nil logger is replaced by zap.NewNop().
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Source returns the underlying randomness source.
func (r *Roller) Source() Source { return r.src }

// Roll evaluates expr and logs the result at debug level.
//
// Precondition: expr must come from Parse.
func (r *Roller) Roll(expr Expression) RollResult {
	result := Roll(expr, r.src)
	r.logger.Debug("dice roll",
		zap.String("expression", result.Expression),
		zap.Ints("dice", result.Dice),
		zap.Int("modifier", result.Modifier),
		zap.Int("total", result.Total()),
	)
	return result
}

// RollExpr parses expr and rolls it, logging the result.
//
// Postcondition: Returns a RollResult or an error matching combaterr.ErrInvalidDiceNotation.
func (r *Roller) RollExpr(expr string) (RollResult, error) {
	e, err := Parse(expr)
	if err != nil {
		return RollResult{}, err
	}
	return r.Roll(e), nil
}

// Amount rolls notation and returns its total, or 0 for empty or malformed notation.
func (r *Roller) Amount(notation string) int {
	v, _ := r.TryAmount(notation)
	return v
}

// TryAmount rolls notation and reports whether it was well formed. Malformed notation
// is logged at warn level and resolves to (0, false) so that a bad data row has no
// effect instead of failing the whole intent. Empty notation is (0, false) without a log.
func (r *Roller) TryAmount(notation string) (int, bool) {
	if notation == "" {
		return 0, false
	}
	res, err := r.RollExpr(notation)
	if err != nil {
		r.logger.Warn("malformed dice notation resolves to 0",
			zap.String("notation", notation),
			zap.Error(err),
		)
		return 0, false
	}
	return res.Total(), true
}

// Die rolls a single die with the given number of sides.
func (r *Roller) Die(sides int) int {
	v := RollDie(r.src, sides)
	r.logger.Debug("die roll", zap.Int("sides", sides), zap.Int("result", v))
	return v
}

// Chance returns a uniform draw in [0, 1).
func (r *Roller) Chance() float64 {
	return r.src.Float64()
}
