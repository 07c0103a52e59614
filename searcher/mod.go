package searcher

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const (
	DefaultCutoff          = 30   // Max playout actions
	DefaultBiasedActions   = 3    // Max biased playout actions
	DefaultBiasProbability = 0.5  // Chance a playout action is biased while any remain
	DefaultUtilityScale    = 0.01 // Scrim values are in tenths of a tile
)

// maxPlayoutSteps guards against transition cycles. A playout this long is a defect.
const maxPlayoutSteps = 100
