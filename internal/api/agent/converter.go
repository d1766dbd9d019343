package agent

import "github.com/NinhThienLuan/404-Brain-Not-Found/internal/entity"

func toSessionDTO(session *entity.Session) *entity.SessionDTO {
	return &entity.SessionDTO{
		ID:          session.ID,
		UserID:      session.UserID,
		CurrentStep: session.CurrentStep,
		Requirement: session.Requirement,
		CodeHistory: session.CodeHistory,
		LastIntent:  session.LastIntent,
		LastPrompt:  session.LastPrompt,
		CreatedAt:   session.CreatedAt,
		UpdatedAt:   session.UpdatedAt,
	}
}

func toSessionDTOs(sessions []entity.Session) []*entity.SessionDTO {
	dtos := make([]*entity.SessionDTO, 0, len(sessions))
	for i := range sessions {
		dtos = append(dtos, toSessionDTO(&sessions[i]))
	}
	return dtos
}
