package model

// RoundCommit is the public record of one shot's state transition: it
// binds the pre-shot commitment, the shot coordinate, the resulting hit
// classification, and the post-shot commitment (spec.md §3).
type RoundCommit struct {
	OldState Digest
	NewState Digest
	Shot     Position
	Hit      HitType
}
