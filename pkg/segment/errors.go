package segment

import (
	apperrors "github.com/killallgit/timeline-api/pkg/errors"
)

func locked(clipID string) *apperrors.AppError {
	return apperrors.Locked("clip", clipID)
}

func outOfRange(clipID string, t, start, end float64) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeOutOfRange, "time %.3f is outside the cuttable range of clip %s", t, clipID).
		WithDetail("clip_id", clipID).
		WithDetail("time", t).
		WithDetail("start", start).
		WithDetail("end", end)
}

func invalidRange(start, end float64, reason string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeInvalidRange, "invalid range [%.3f, %.3f): %s", start, end, reason).
		WithDetail("start", start).
		WithDetail("end", end)
}

func tooShort(duration float64) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeTooShort, "clip duration %.3fs is below the %.1fs minimum", duration, minDuration).
		WithDetail("duration", duration)
}

func typeMismatch(a, b string) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeTypeMismatch, "cannot combine %s with %s", a, b).
		WithDetail("kind_a", a).
		WithDetail("kind_b", b)
}

func notAdjacent(gap float64) *apperrors.AppError {
	return apperrors.Newf(apperrors.ErrCodeNotAdjacent, "clips are %.3fs apart, more than the %.1fs adjacency tolerance", gap, adjacency).
		WithDetail("gap", gap)
}

func clipNotFound(clipID string) *apperrors.AppError {
	return apperrors.NotFound("clip", clipID)
}
