package placement

import (
	"go.uber.org/zap"

	"github.com/javiermolinar/poolboard/internal/geometry"
	"github.com/javiermolinar/poolboard/internal/schedule"
)

// ResizedEnd returns the end minute after dragging a session's bottom edge
// by deltaPixels screen units at the given zoom scale. The result is snapped
// to 15 minutes and kept within (start, dayEnd], where dayEnd is the pool's
// last visible minute.
func ResizedEnd(g geometry.Grid, se schedule.Session, dayEnd, originalEnd int, deltaPixels, scale float64) int {
	if scale <= 0 {
		scale = 1
	}
	end := float64(originalEnd) + g.PixelsToMinutes(deltaPixels/scale)
	snapped := int(geometry.SnapToGrid(end))
	hi := min(max(dayEnd, se.Start+geometry.SnapMinutes), geometry.MinutesPerDay)
	return geometry.ClampInt(snapped, se.Start+geometry.SnapMinutes, hi)
}

// Resize commits a bottom-edge drag. It writes to the store only when the new
// end differs from the stored one.
func (c *Committer) Resize(sessionID string, originalEnd int, deltaPixels, scale float64) Outcome {
	none := Outcome{Action: ActionNone}
	se, err := c.store.Session(sessionID)
	if err != nil {
		return none
	}
	dayEnd := geometry.MinutesPerDay
	if pool, err := c.store.Pool(se.PoolID); err == nil {
		_, endHour := pool.HourRange(c.store.Grid())
		dayEnd = endHour * 60
	}

	end := ResizedEnd(c.store.Grid(), se, dayEnd, originalEnd, deltaPixels, scale)
	if end == se.End || end <= se.Start {
		return none
	}
	c.store.UpdateSession(sessionID, schedule.SessionPatch{End: &end})
	c.log.Debug("session resized",
		zap.String("session_id", sessionID),
		zap.Int("from", se.End),
		zap.Int("to", end))
	return Outcome{Action: ActionResize, SessionID: sessionID, PoolID: se.PoolID, Day: se.Day, Start: se.Start, End: end}
}
