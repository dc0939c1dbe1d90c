// Package pdf renders order invoices. The layout is a simple A4 document:
// seller block, buyer block, line item table, and totals.
package pdf

import (
	"bytes"
	"fmt"

	"atelier/internal/core/domain/model/customer"
	"atelier/internal/core/domain/model/order"

	"github.com/jung-kurt/gofpdf"
)

// Seller holds the company details printed on every invoice.
type Seller struct {
	Name    string
	Address string
	VAT     string
	Email   string
}

// InvoiceRenderer implements ports.InvoiceRenderer with gofpdf.
type InvoiceRenderer struct {
	seller Seller
}

// NewInvoiceRenderer creates a renderer with the given seller block.
func NewInvoiceRenderer(seller Seller) *InvoiceRenderer {
	return &InvoiceRenderer{seller: seller}
}

// RenderInvoice produces the PDF invoice for one order.
func (r *InvoiceRenderer) RenderInvoice(o *order.Order, c *customer.Customer) ([]byte, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice %s", o.OrderNumber()), true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "INVOICE")
	pdf.Ln(8)

	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice number: %s", o.OrderNumber()))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", o.CreatedAt().Format("2006-01-02")))
	pdf.Ln(10)

	r.sellerBlock(pdf)
	r.buyerBlock(pdf, c)
	r.itemTable(pdf, o)

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 8, "Total", "T", 0, "R", false, 0, "")
	pdf.CellFormat(40, 8, o.TotalAmount().String(), "T", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", o.OrderNumber(), err)
	}

	return buf.Bytes(), nil
}

func (r *InvoiceRenderer) sellerBlock(pdf *gofpdf.Fpdf) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, r.seller.Name)
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "", 9)
	if r.seller.Address != "" {
		pdf.Cell(0, 5, r.seller.Address)
		pdf.Ln(4)
	}
	if r.seller.VAT != "" {
		pdf.Cell(0, 5, fmt.Sprintf("VAT: %s", r.seller.VAT))
		pdf.Ln(4)
	}
	if r.seller.Email != "" {
		pdf.Cell(0, 5, r.seller.Email)
		pdf.Ln(4)
	}
	pdf.Ln(4)
}

func (r *InvoiceRenderer) buyerBlock(pdf *gofpdf.Fpdf, c *customer.Customer) {
	pdf.SetFont("Helvetica", "B", 10)
	pdf.Cell(0, 6, "Bill to")
	pdf.Ln(5)
	pdf.SetFont("Helvetica", "", 9)
	pdf.Cell(0, 5, c.Name())
	pdf.Ln(4)
	if company := c.Profile().CompanyName; company != "" {
		pdf.Cell(0, 5, company)
		pdf.Ln(4)
	}
	if vat := c.Profile().VATNumber; vat != "" {
		pdf.Cell(0, 5, fmt.Sprintf("VAT: %s", vat))
		pdf.Ln(4)
	}
	pdf.Cell(0, 5, c.Email())
	pdf.Ln(10)
}

func (r *InvoiceRenderer) itemTable(pdf *gofpdf.Fpdf, o *order.Order) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(90, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(20, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Unit price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range o.Items() {
		name := item.ProductName()
		if item.Size() != "" {
			name = fmt.Sprintf("%s (%s)", name, item.Size())
		}
		pdf.CellFormat(90, 7, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", item.Quantity()), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, item.UnitPrice().String(), "", 0, "R", false, 0, "")
		pdf.CellFormat(40, 7, item.Subtotal().String(), "", 1, "R", false, 0, "")
	}
}
