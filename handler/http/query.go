package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
)

const (
	keyEventID      = "eventID"
	keyInvitationID = "invitationID"
	keyMessageID    = "messageID"
	keyToken        = "token"
)

func extractEventID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[keyEventID], 10, 64)
}

func extractInvitationID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[keyInvitationID], 10, 64)
}

func extractMessageID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)[keyMessageID], 10, 64)
}

func extractToken(r *http.Request) string {
	return mux.Vars(r)[keyToken]
}
