package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// ReviewCallbackData encodes a decision button's callback payload,
// e.g. "approve:1042".
func ReviewCallbackData(d Decision, id RequestID) string {
	return string(d) + ":" + strconv.FormatInt(int64(id), 10)
}

// ParseReviewCallback decodes a callback payload produced by
// ReviewCallbackData. The decision token is returned as-is; validating it
// against the known set is the moderation workflow's job.
func ParseReviewCallback(data string) (Decision, RequestID, error) {
	token, idStr, found := strings.Cut(data, ":")
	if !found || token == "" {
		return "", 0, fmt.Errorf("%w: %q", ErrInvalidDecision, data)
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: bad request id %q", ErrInvalidDecision, idStr)
	}

	return Decision(token), RequestID(id), nil
}
