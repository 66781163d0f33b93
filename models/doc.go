// Package models is the model-registry boundary of the kernel.
//
// A Model tells the node registry how to classify an entity for distribution
// (regular, device, or coordination) and how to construct node instances.
// The numerical dynamics of concrete models live outside this module; the
// static models provided here carry identity and lifecycle only.
package models
