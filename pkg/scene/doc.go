// Package scene defines the scene produced by evaluating an ROI script:
// a set of named regions plus the probes recorded against them.
package scene
