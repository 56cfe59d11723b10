package domain

// Entitlement checks are pure functions of the plan and the caller-supplied
// usage numbers. They never touch storage, so denials cost nothing and the
// presentation layer can rely on a single enforcement point.

// CanUpload decides whether one more document of the given size fits within
// the plan. When both ceilings are exceeded the document-count violation is
// reported first.
func CanUpload(plan Plan, currentDocCount int, currentStorageUsed, incomingSizeBytes int64) error {
	if !plan.Limits.MaxDocuments.Allows(int64(currentDocCount) + 1) {
		return ErrDocumentLimitExceeded
	}
	if !plan.Limits.MaxStorageBytes.Allows(currentStorageUsed + incomingSizeBytes) {
		return ErrStorageLimitExceeded
	}
	return nil
}

// CanDelete decides whether the plan permits deleting documents.
func CanDelete(plan Plan) error {
	if !plan.Limits.CanDeleteDocuments {
		return ErrDeletionNotPermitted
	}
	return nil
}

// RecommendationQuota returns how many AI book recommendations the plan is
// entitled to. A zero quota means the feature is unavailable, which callers
// must surface as ErrFeatureNotAvailable rather than an empty result.
func RecommendationQuota(plan Plan) Limit {
	return plan.Limits.MaxAIRecommendations
}

// MusicEnabled reports whether the plan includes ambient music suggestions.
func MusicEnabled(plan Plan) bool {
	return plan.ID == PlanPro || plan.ID == PlanUltraPro
}
