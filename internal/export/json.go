package export

import (
	"encoding/json"
	"fmt"

	"github.com/javiermolinar/poolboard/internal/schedule"
)

// JSON renders the board snapshot in the same layout the store persists.
func JSON(st schedule.State) ([]byte, error) {
	out, err := json.MarshalIndent(st.Clone(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode json: %w", err)
	}
	return append(out, '\n'), nil
}
