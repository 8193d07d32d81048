package http

import (
	"github.com/jhoicas/resto-inventario/internal/application/dto"
	"github.com/jhoicas/resto-inventario/internal/domain/entity"
	"github.com/jhoicas/resto-inventario/internal/domain/repository"
)

// Proyecciones entidad → DTO de respuesta.

func toItemResponse(i *entity.Item) dto.ItemResponse {
	return dto.ItemResponse{
		ID:            i.ID,
		Name:          i.Name,
		UnitID:        i.UnitID,
		CategoryID:    i.CategoryID,
		StockQuantity: i.StockQuantity,
		MinimumStock:  i.MinimumStock,
		CreatedAt:     i.CreatedAt,
		UpdatedAt:     i.UpdatedAt,
	}
}

func toItemResponses(items []*entity.Item) []dto.ItemResponse {
	out := make([]dto.ItemResponse, len(items))
	for i, it := range items {
		out[i] = toItemResponse(it)
	}
	return out
}

func toDetailResponse(d *entity.DetailTransaction) dto.DetailResponse {
	return dto.DetailResponse{
		ID:                 d.ID,
		TransactionID:      d.TransactionID,
		ItemID:             d.ItemID,
		SupplierID:         d.SupplierID,
		Quantity:           d.Quantity,
		QuantityCheck:      d.QuantityCheck,
		QuantityDifference: d.QuantityDifference,
		Note:               d.Note,
		ExpiryDate:         d.ExpiryDate,
		Status:             d.Status,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

func toTransactionResponse(t *entity.Transaction) dto.TransactionResponse {
	resp := dto.TransactionResponse{
		ID:        t.ID,
		Type:      t.Type,
		Status:    t.Status,
		UserID:    t.UserID,
		Date:      t.Date,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
	for _, d := range t.Details {
		resp.Details = append(resp.Details, toDetailResponse(d))
	}
	return resp
}

func toSupplierResponse(s *entity.Supplier) dto.SupplierResponse {
	return dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Phone:     s.Phone,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toMovementResponse(m *entity.ItemMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:            m.ID,
		TransactionID: m.TransactionID,
		ItemID:        m.ItemID,
		Type:          m.Type,
		Delta:         m.Delta,
		ExpiryDate:    m.ExpiryDate,
		CreatedAt:     m.CreatedAt,
	}
}

func toStockReportDTOs(rows []repository.StockReportRow) []dto.StockReportRowDTO {
	out := make([]dto.StockReportRowDTO, len(rows))
	for i, r := range rows {
		out[i] = dto.StockReportRowDTO{
			ItemID:             r.ItemID,
			ItemName:           r.ItemName,
			Category:           r.CategoryName,
			Unit:               r.UnitName,
			CurrentStock:       r.CurrentStock,
			MinimumStock:       r.MinimumStock,
			TotalIn:            r.TotalIn,
			TotalOut:           r.TotalOut,
			NetMovement:        r.NetMovement,
			StockAtPeriodStart: r.StockAtPeriodStart,
			StockAtPeriodEnd:   r.StockAtPeriodEnd,
			StockStatus:        r.StockStatus,
			UtilizationRate:    r.UtilizationRate,
			TransactionCount:   r.TransactionCount,
		}
	}
	return out
}
