package crew

import (
	"fmt"
	"strconv"
	"strings"
)

// InvalidIDsError lists crew ids that are not on the organization's roster
type InvalidIDsError struct {
	IDs []int64
}

func (e *InvalidIDsError) Error() string {
	parts := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("invalid crew ids: %s", strings.Join(parts, ", "))
}
