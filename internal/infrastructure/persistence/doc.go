// Package persistence provides the GORM repositories of FlowRisk together with
// the database connection and the versioned schema migrations (gormigrate).
// Repositories convert between domain entities and the models package and report
// missing rows as errs.ErrNotFound.
package persistence
