package remote

import "github.com/nfrund/gallery/internal/domain"

// userDTO matches the user object of the REST contract. Card owners and
// likers are full user objects too.
type userDTO struct {
	ID     string `json:"_id"`
	Name   string `json:"name"`
	About  string `json:"about"`
	Avatar string `json:"avatar"`
}

// cardDTO matches the card object of the REST contract.
type cardDTO struct {
	ID    string    `json:"_id"`
	Name  string    `json:"name"`
	Link  string    `json:"link"`
	Owner userDTO   `json:"owner"`
	Likes []userDTO `json:"likes"`
}

type profileRequest struct {
	Name  string `json:"name"`
	About string `json:"about"`
}

type cardRequest struct {
	Name string `json:"name"`
	Link string `json:"link"`
}

type avatarRequest struct {
	Avatar string `json:"avatar"`
}

func (dto userDTO) toDomain() domain.UserProfile {
	return domain.UserProfile{
		ID:        dto.ID,
		Name:      dto.Name,
		About:     dto.About,
		AvatarURL: dto.Avatar,
	}
}

func (dto cardDTO) toDomain() domain.Card {
	ids := make([]string, 0, len(dto.Likes))
	for _, u := range dto.Likes {
		ids = append(ids, u.ID)
	}
	return domain.Card{
		ID:       dto.ID,
		Name:     dto.Name,
		ImageURL: dto.Link,
		OwnerID:  dto.Owner.ID,
		LikedBy:  domain.NewUserSet(ids...),
	}
}
