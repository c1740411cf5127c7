package handlers

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/arjunrk/campusvibe/internal/models"
)

func countBookmarks(t *testing.T, db *gorm.DB, userID, eventID uuid.UUID) int64 {
	var count int64
	require.NoError(t, db.Model(&models.Bookmark{}).
		Where("user_id = ? AND event_id = ?", userID, eventID).
		Count(&count).Error)
	return count
}

func TestToggleBookmarkTwiceRestoresState(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@campus.edu")
	event := seedEvent(t, db, 100, nil)
	r := authedRouter(db, user.ID)

	first := postJSON(r, "/v1/events/"+event.ID.String()+"/bookmark", "")
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), `"bookmarked":true`)
	assert.Equal(t, int64(1), countBookmarks(t, db, user.ID, event.ID))

	second := postJSON(r, "/v1/events/"+event.ID.String()+"/bookmark", "")
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Contains(t, second.Body.String(), `"bookmarked":false`)
	assert.Equal(t, int64(0), countBookmarks(t, db, user.ID, event.ID))
}

func TestToggleBookmarkUnknownEvent(t *testing.T) {
	db := setupTestDB(t)
	user := seedUser(t, db, "asha@campus.edu")
	r := authedRouter(db, user.ID)

	w := postJSON(r, "/v1/events/"+uuid.NewString()+"/bookmark", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}
