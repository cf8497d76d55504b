package dto

type CreateBaseRequest struct {
	Name     string `json:"name" validate:"required"`
	Location string `json:"location"`
}

type UpdateBaseRequest struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

type BaseResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	CreatedAt string `json:"created_at"`
}
