// Package config loads, merges and validates settings for the sync server
// and the device agent.
//
// Sources, lowest priority first:
//  1. Built-in defaults
//  2. Environment variables
//  3. Command-line flags
//  4. JSON config file
package config
