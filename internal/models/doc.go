// Package models lists the OpenAI chat models available to the configured
// API key, for use with the openai dictionary backend.
package models
