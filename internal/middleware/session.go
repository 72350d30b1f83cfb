package middleware

import (
	"net/http"

	"github.com/WildHonestFur/Quantix-Arena/internal/session"

	"github.com/gin-gonic/gin"
)

// CompetitionSession requires a valid competition-scope cookie and stores
// the competition id on the context.
func CompetitionSession(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(session.CookieCompetition)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "join a competition first"})
			return
		}
		competitionID, err := manager.Parse(token, session.ScopeCompetition)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		c.Set("competition_id", competitionID)
		c.Next()
	}
}

// ParticipantSession requires both session cookies and stores both ids. The
// competition the participant token was issued under is not re-derived here;
// handlers cross-check the participant row against the competition id.
func ParticipantSession(manager *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		compToken, err := c.Cookie(session.CookieCompetition)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "join a competition first"})
			return
		}
		competitionID, err := manager.Parse(compToken, session.ScopeCompetition)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		partToken, err := c.Cookie(session.CookieParticipant)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "register first"})
			return
		}
		participantID, err := manager.Parse(partToken, session.ScopeParticipant)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}

		c.Set("competition_id", competitionID)
		c.Set("participant_id", participantID)
		c.Next()
	}
}
