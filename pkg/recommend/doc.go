// Package recommend implements the recommendation engine: given a normalized
// incident, the active discipline profile, and the ambient session context,
// it decides deterministically whether a caution should be thrown, whether a
// penalty should be suggested, and whether a steward must review the case.
//
// Three sub-evaluators run in fixed order (caution, penalty, review); each
// produces zero or one recommendation. Every recommendation carries a
// confidence score, a priority, and a human-readable justification, and the
// result includes a reasoning transcript so stewards can see why the engine
// decided what it did. Identical inputs always produce identical outputs
// (aside from recommendation IDs and timestamps).
//
// The engine is pure with respect to its inputs except for the injected
// Notifier side channel and wall-clock timing. It holds no mutable state and
// is safe for concurrent use across independent incidents.
package recommend
