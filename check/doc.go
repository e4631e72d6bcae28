// Package check contains the validation stages for mailprobe: format
// rules, MX resolution, the SMTP mailbox probe and the typo suggestion
// engine. The stages can be used directly, but the usual entry point is
// the Validator in the github.com/relayqa/mailprobe package, which runs
// them as a pipeline.
package check
