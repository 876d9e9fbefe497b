package dto

import "github.com/yukikurage/who-owns-this/internal/models"

// TeamDTO represents a team in API responses
type TeamDTO struct {
	ID       uint64 `json:"_id"`
	TeamID   string `json:"teamId"`
	TeamName string `json:"teamName"`
	TeamCode string `json:"teamCode"`
	LeaderID string `json:"leaderId"`
}

// MemberDTO represents a team member in API responses
type MemberDTO struct {
	ID       uint64 `json:"_id"`
	MemberID string `json:"memberId"`
	Name     string `json:"name"`
	TeamID   string `json:"teamId"`
}

// CreateTeamResponse is returned by POST /team/create
type CreateTeamResponse struct {
	Team   TeamDTO   `json:"team"`
	Member MemberDTO `json:"member"`
}

// JoinTeamResponse is returned by POST /team/join
type JoinTeamResponse struct {
	Team        TeamDTO   `json:"team"`
	Member      MemberDTO `json:"member"`
	IsNewMember bool      `json:"isNewMember"`
}

// SessionDTO is the identity record kept in the client session.
type SessionDTO struct {
	MemberID   string `json:"memberId"`
	MemberName string `json:"memberName"`
	TeamID     string `json:"teamId"`
	TeamName   string `json:"teamName"`
	TeamCode   string `json:"teamCode"`
	LeaderID   string `json:"leaderId"`
	IsLeader   bool   `json:"isLeader"`
}

// ToTeamDTO converts a Team model to TeamDTO
func ToTeamDTO(team models.Team) TeamDTO {
	return TeamDTO{
		ID:       team.ID,
		TeamID:   team.TeamID,
		TeamName: team.TeamName,
		TeamCode: team.TeamCode,
		LeaderID: team.LeaderID,
	}
}

// ToMemberDTO converts a Member model to MemberDTO
func ToMemberDTO(member models.Member) MemberDTO {
	return MemberDTO{
		ID:       member.ID,
		MemberID: member.MemberID,
		Name:     member.Name,
		TeamID:   member.TeamID,
	}
}

// ToMemberDTOs converts members, returning an empty (non-nil) slice for none
func ToMemberDTOs(members []models.Member) []MemberDTO {
	items := make([]MemberDTO, len(members))
	for i, member := range members {
		items[i] = ToMemberDTO(member)
	}
	return items
}

// ToSessionDTO builds the session record for member acting in team
func ToSessionDTO(team models.Team, member models.Member) SessionDTO {
	return SessionDTO{
		MemberID:   member.MemberID,
		MemberName: member.Name,
		TeamID:     team.TeamID,
		TeamName:   team.TeamName,
		TeamCode:   team.TeamCode,
		LeaderID:   team.LeaderID,
		IsLeader:   team.LeaderID == member.MemberID,
	}
}
