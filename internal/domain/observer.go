package domain

// EngineObserver receives engine notifications synchronously on the
// emitting call stack. Observers are registered at construction; a
// panicking observer is not recovered by the engine.
type EngineObserver interface {
	ValidationFailed(entryID string, entryType RecordType, result *ValidationResult)
	ComplianceChecked(report *ComplianceReport)
}
