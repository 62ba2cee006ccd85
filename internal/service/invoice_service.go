package service

import (
	"bytes"
	"fmt"

	"github.com/cashere-pos/internal/config"
	"github.com/cashere-pos/internal/models"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

// InvoiceService 票据渲染服务, 输出 PDF 字节流
type InvoiceService struct {
	cfg             *config.Config
	checkoutService *CheckoutService
}

// NewInvoiceService 创建票据服务
func NewInvoiceService(cfg *config.Config, checkoutService *CheckoutService) *InvoiceService {
	return &InvoiceService{
		cfg:             cfg,
		checkoutService: checkoutService,
	}
}

// RenderInvoice 渲染单条流水的票据
func (s *InvoiceService) RenderInvoice(owner *models.User, purchase *models.Purchase) ([]byte, error) {
	if purchase == nil {
		return nil, ErrPurchaseNotFound
	}
	return s.renderInvoiceDocument(owner, []models.Purchase{*purchase})
}

// RenderBulkInvoice 渲染多条流水的合并票据, 单条时等价于 RenderInvoice
func (s *InvoiceService) RenderBulkInvoice(owner *models.User, purchases []models.Purchase) ([]byte, error) {
	if len(purchases) == 0 {
		return nil, ErrNoPurchasesSelected
	}
	if len(purchases) == 1 {
		return s.RenderInvoice(owner, &purchases[0])
	}
	return s.renderInvoiceDocument(owner, purchases)
}

// RenderPurchaseHistory 渲染销售流水汇总表
func (s *InvoiceService) RenderPurchaseHistory(owner *models.User, purchases []models.Purchase) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	s.writeHeader(pdf, owner, "Riwayat Transaksi")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(30, 7, "Tanggal", "1", 0, "L", true, 0, "")
	pdf.CellFormat(50, 7, "Produk", "1", 0, "L", true, 0, "")
	pdf.CellFormat(12, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(26, 7, "Harga", "1", 0, "R", true, 0, "")
	pdf.CellFormat(26, 7, "Total", "1", 0, "R", true, 0, "")
	pdf.CellFormat(46, 7, "Pelanggan", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	grandTotal := decimal.Zero
	for _, purchase := range purchases {
		pdf.CellFormat(30, 6, purchase.PurchasedAt.Format("2006-01-02 15:04"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, purchase.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(12, 6, fmt.Sprintf("%d", purchase.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, purchase.Price.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(26, 6, purchase.TotalPrice.String(), "1", 0, "R", false, 0, "")
		customer := purchase.CustomerName
		if customer == "" {
			customer = purchase.CustomerID
		}
		pdf.CellFormat(46, 6, customer, "1", 1, "L", false, 0, "")
		grandTotal = grandTotal.Add(purchase.TotalPrice.Decimal)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(144, 7, "Total Penjualan", "", 0, "R", false, 0, "")
	pdf.CellFormat(46, 7, models.NewMoneyFromDecimal(grandTotal).String(), "", 1, "R", false, 0, "")

	return outputPDF(pdf)
}

func (s *InvoiceService) renderInvoiceDocument(owner *models.User, purchases []models.Purchase) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	s.writeHeader(pdf, owner, "Invoice")

	first := purchases[0]
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("No. Pelanggan: %s", first.CustomerID), "", 1, "L", false, 0, "")
	if first.CustomerName != "" {
		pdf.CellFormat(0, 6, fmt.Sprintf("Pelanggan: %s", first.CustomerName), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Tanggal: %s", first.PurchasedAt.Format("2006-01-02 15:04")), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Pembayaran: %s", first.PaymentMethod), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(90, 7, "Produk", "1", 0, "L", true, 0, "")
	pdf.CellFormat(20, 7, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Harga", "1", 0, "R", true, 0, "")
	pdf.CellFormat(40, 7, "Subtotal", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	subtotal := decimal.Zero
	for _, purchase := range purchases {
		pdf.CellFormat(90, 6, purchase.ProductName, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, fmt.Sprintf("%d", purchase.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, purchase.Price.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(40, 6, purchase.TotalPrice.String(), "1", 1, "R", false, 0, "")
		subtotal = subtotal.Add(purchase.TotalPrice.Decimal)
	}

	taxRate := decimal.Zero
	if s.checkoutService != nil {
		taxRate = s.checkoutService.TaxRate()
	}
	tax := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(tax)

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(150, 6, "Subtotal", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, models.NewMoneyFromDecimal(subtotal).String(), "", 1, "R", false, 0, "")
	pdf.CellFormat(150, 6, fmt.Sprintf("Pajak (%s%%)", taxRate.Mul(decimal.NewFromInt(100)).String()), "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 6, models.NewMoneyFromDecimal(tax).String(), "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(150, 7, "Total", "", 0, "R", false, 0, "")
	pdf.CellFormat(40, 7, models.NewMoneyFromDecimal(total).String(), "", 1, "R", false, 0, "")

	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(0, 5, "Terima kasih atas kunjungan Anda.", "", 1, "C", false, 0, "")

	return outputPDF(pdf)
}

func (s *InvoiceService) writeHeader(pdf *fpdf.Fpdf, owner *models.User, title string) {
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, "Cashere", "", 1, "L", false, 0, "")
	if owner != nil && owner.DisplayName != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 5, owner.DisplayName, "", 1, "L", false, 0, "")
	}
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 7, title, "", 1, "L", false, 0, "")
	pdf.Ln(2)
}

func outputPDF(pdf *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
