// Package classify decides which target field, if any, each source column
// corresponds to.
//
// Classification is split in two layers:
//   - a Capability proposes a field from the column name, its English gloss
//     and a sample value. Capabilities are external and untrusted: a remote
//     language model (OpenAICapability), the local header vocabulary
//     (RuleCapability), or a fixed table (StubCapability).
//   - the Classifier enforces the decision policy on top: syntactic evidence
//     in the sample (email, phone, currency) overrides any capability, the
//     capability reply is validated and clamped, and every failure degrades
//     to an unmapped column instead of an error.
//
// Classification of one column never depends on another, so ClassifyAll may
// fan out over a worker pool while keeping results in column order.
package classify
