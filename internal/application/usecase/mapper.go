package usecase

import (
	"github.com/jhoicas/company-admin/internal/application/dto"
	"github.com/jhoicas/company-admin/internal/domain/entity"
)

// ToCompanyResponse convierte la entidad al DTO de salida.
func ToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:            c.ID,
		Code:          c.Code,
		Name:          c.Name,
		Level:         c.Level,
		Country:       c.Country,
		City:          c.City,
		FoundedYear:   c.FoundedYear,
		AnnualRevenue: c.AnnualRevenue,
		Employees:     c.Employees,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToUserResponse convierte la entidad al DTO de salida (sin password).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
