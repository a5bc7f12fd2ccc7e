// Package models contains the GORM database models of FlowRisk.
// They are kept apart from the domain entities; each model converts with ToDomain and FromDomain.
package models
