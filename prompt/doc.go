// Package prompt assembles the model input for a chat turn: a fixed
// system instruction, the conversation history, and deterministic
// context blocks built from retrieved instructor profiles.
package prompt
