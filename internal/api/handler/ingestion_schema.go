package handler

type triggerIngestionRequest struct {
	DocumentID int64 `json:"document_id" validate:"required"`
}

type updateIngestionStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending InProgress Completed Failed Cancelled"`
}
