// Package docchat provides a small web service for asking questions about a
// website or an uploaded PDF. Text is extracted from the supplied source,
// held in process memory, and handed to a hosted language model together
// with each question.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, pdf/, gemini/, chi-based http/).
package docchat
