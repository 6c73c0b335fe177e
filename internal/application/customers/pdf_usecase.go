package customers

import (
	"context"
	"fmt"

	"github.com/jhoicas/booking-dashboard/internal/domain"
	"github.com/jhoicas/booking-dashboard/internal/domain/entity"
	"github.com/jhoicas/booking-dashboard/internal/domain/repository"
)

// ConfirmationPDFGenerator genera el comprobante de reserva de un cliente.
type ConfirmationPDFGenerator interface {
	GenerateConfirmationPDF(ctx context.Context, customer *entity.Customer) ([]byte, error)
}

// PDFUseCase descarga del comprobante de reserva en PDF.
type PDFUseCase struct {
	repo      repository.CustomerRepository
	generator ConfirmationPDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(repo repository.CustomerRepository, generator ConfirmationPDFGenerator) *PDFUseCase {
	return &PDFUseCase{repo: repo, generator: generator}
}

// DownloadConfirmation devuelve (pdfBytes, filename, nil) o domain.ErrNotFound si el cliente no existe.
func (uc *PDFUseCase) DownloadConfirmation(ctx context.Context, id string) ([]byte, string, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
	}
	if c == nil {
		return nil, "", domain.ErrNotFound
	}
	b, err := uc.generator.GenerateConfirmationPDF(ctx, c)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	ref := c.ID
	if len(ref) > 8 {
		ref = ref[:8]
	}
	return b, fmt.Sprintf("booking-%s.pdf", ref), nil
}
