package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/who-owns-this/internal/dto"
	apierrors "github.com/yukikurage/who-owns-this/internal/errors"
	"github.com/yukikurage/who-owns-this/internal/middleware"
	"github.com/yukikurage/who-owns-this/internal/services"
)

// TeamHandler handles team creation, joining and roster listing.
type TeamHandler struct {
	teamService *services.TeamService
}

// NewTeamHandler creates a new TeamHandler.
func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{
		teamService: teamService,
	}
}

// CreateTeam creates a team together with its leader.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	type CreateTeamRequest struct {
		TeamName   string `json:"teamName"`
		LeaderName string `json:"leaderName"`
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	team, leader, err := h.teamService.CreateTeam(c.Request.Context(), services.CreateTeamInput{
		TeamName:   req.TeamName,
		LeaderName: req.LeaderName,
	})
	if err != nil {
		apierrors.Respond(c, err, "Failed to create team")
		return
	}

	saveIdentity(c, dto.ToSessionDTO(*team, *leader))
	c.JSON(http.StatusCreated, dto.CreateTeamResponse{
		Team:   dto.ToTeamDTO(*team),
		Member: dto.ToMemberDTO(*leader),
	})
}

// JoinTeam registers a new member or signs an existing one back in.
func (h *TeamHandler) JoinTeam(c *gin.Context) {
	type JoinTeamRequest struct {
		MemberName string `json:"memberName"`
		TeamCode   string `json:"teamCode"`
	}

	var req JoinTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.teamService.JoinTeam(c.Request.Context(), services.JoinTeamInput{
		MemberName: req.MemberName,
		TeamCode:   req.TeamCode,
	})
	if err != nil {
		apierrors.Respond(c, err, "Failed to join team")
		return
	}

	saveIdentity(c, dto.ToSessionDTO(*result.Team, *result.Member))
	c.JSON(http.StatusOK, dto.JoinTeamResponse{
		Team:        dto.ToTeamDTO(*result.Team),
		Member:      dto.ToMemberDTO(*result.Member),
		IsNewMember: result.IsNewMember,
	})
}

// ListMembers returns a team's roster in registration order.
func (h *TeamHandler) ListMembers(c *gin.Context) {
	members, err := h.teamService.ListMembers(c.Request.Context(), c.Param("teamId"))
	if err != nil {
		apierrors.Respond(c, err, "Failed to fetch members")
		return
	}

	c.JSON(http.StatusOK, dto.ToMemberDTOs(members))
}

// saveIdentity caches the identity for the client. The write has already
// succeeded, so a session failure is logged rather than returned.
func saveIdentity(c *gin.Context, identity dto.SessionDTO) {
	if err := middleware.SaveIdentity(c, identity); err != nil {
		logrus.WithField("member_id", identity.MemberID).WithError(err).Warn("Failed to save session")
	}
}
