// Package models contains the GORM persistence models and their
// mappers to and from the domain aggregates. Domain types never carry
// GORM tags; every aggregate crosses this boundary through an explicit
// ToDomain/FromDomain pair.
package models
