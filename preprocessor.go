package cloudtree

// CommandPreprocessor runs before the tree walk begins (§4.2 step 2). It
// may mutate the input, store context metadata, or short-circuit the
// parse by returning an error.
type CommandPreprocessor[C any] func(cmdCtx *CommandContext[C], input *CommandInput) error

// CommandPostprocessor runs after a successful tree walk and permission
// check, before the handler is invoked (§4.2 step 6). Any failure
// short-circuits execution before the handler runs.
type CommandPostprocessor[C any] func(cmdCtx *CommandContext[C]) error

const metaProcessedKey = "cloudtree:processed"

// markProcessed sets the internal "processed" marker the parser asserts
// is present once preprocessors have run (§4.2 step 2).
func markProcessed[C any](cmdCtx *CommandContext[C]) {
	cmdCtx.MetaSet(metaProcessedKey, true)
}

func wasProcessed[C any](cmdCtx *CommandContext[C]) bool {
	v, ok := cmdCtx.MetaGet(metaProcessedKey)
	return ok && v == true
}
