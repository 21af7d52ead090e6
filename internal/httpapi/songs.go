package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
)

type voteInfoRequest struct {
	Artist string  `json:"artist"`
	Title  string  `json:"title"`
	Album  *string `json:"album"`
}

func (s *Server) handleVoteInfo(w http.ResponseWriter, r *http.Request) {
	var req voteInfoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}

	info, err := s.votes.VoteInfo(r.Context(), req.Artist, req.Title, req.Album)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

type submitVoteRequest struct {
	UserID   string `json:"userId"`
	VoteType int    `json:"voteType"`
}

func (s *Server) handleSubmitVote(w http.ResponseWriter, r *http.Request) {
	songID, ok := songIDFromPath(w, r)
	if !ok {
		return
	}

	var req submitVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid request body"})
		return
	}

	result, err := s.votes.Submit(r.Context(), songID, req.UserID, req.VoteType)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleUserVote(w http.ResponseWriter, r *http.Request) {
	songID, ok := songIDFromPath(w, r)
	if !ok {
		return
	}

	vote, err := s.votes.UserVote(r.Context(), songID, r.PathValue("userID"))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, struct {
		UserVote *int `json:"userVote"`
	}{UserVote: vote})
}

func songIDFromPath(w http.ResponseWriter, r *http.Request) (int64, bool) {
	songID, err := strconv.ParseInt(r.PathValue("songID"), 10, 64)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorBody{Error: "Invalid song ID"})
		return 0, false
	}
	return songID, true
}
