package panel

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/cashere-pos/internal/http/response"
	"github.com/cashere-pos/internal/models"

	"github.com/gin-gonic/gin"
)

func (h *Handler) currentOwner(c *gin.Context, ownerID uint) *models.User {
	owner, err := h.UserRepo.GetByID(ownerID)
	if err != nil {
		requestLog(c).Warnw("invoice_owner_fetch_failed", "owner_id", ownerID, "error", err)
		return nil
	}
	return owner
}

func servePDF(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", data)
}

// DownloadInvoice 下载单条流水的票据
func (h *Handler) DownloadInvoice(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	purchaseID, ok := parseUintParam(c, "id")
	if !ok {
		return
	}
	purchase, err := h.PurchaseService.Get(ownerID, purchaseID)
	if err != nil {
		respondWithMappedError(c, err, purchaseErrorRules, response.CodeInternal, "error.purchase_fetch_failed")
		return
	}
	data, err := h.InvoiceService.RenderInvoice(h.currentOwner(c, ownerID), purchase)
	if err != nil {
		respondError(c, response.CodeInternal, "error.invoice_render_failed", err)
		return
	}
	servePDF(c, "invoice-"+purchase.CustomerID+".pdf", data)
}

// DownloadBulkInvoice 下载多条流水的合并票据, ids 为逗号分隔的流水 ID
func (h *Handler) DownloadBulkInvoice(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	rawIDs := strings.Split(c.Query("ids"), ",")
	ids := make([]uint, 0, len(rawIDs))
	for _, raw := range rawIDs {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || value == 0 {
			respondError(c, response.CodeBadRequest, "error.bad_request", nil)
			return
		}
		ids = append(ids, uint(value))
	}
	if len(ids) == 0 {
		respondError(c, response.CodeBadRequest, "error.no_purchases_selected", nil)
		return
	}

	purchases, err := h.PurchaseService.ListByIDs(ownerID, ids)
	if err != nil {
		respondWithMappedError(c, err, purchaseErrorRules, response.CodeInternal, "error.purchase_fetch_failed")
		return
	}
	if len(purchases) == 0 {
		respondError(c, response.CodeNotFound, "error.purchase_not_found", nil)
		return
	}
	data, err := h.InvoiceService.RenderBulkInvoice(h.currentOwner(c, ownerID), purchases)
	if err != nil {
		respondWithMappedError(c, err, purchaseErrorRules, response.CodeInternal, "error.invoice_render_failed")
		return
	}
	servePDF(c, "invoice-"+purchases[0].CustomerID+".pdf", data)
}

// DownloadPurchaseHistory 下载全部销售流水汇总
func (h *Handler) DownloadPurchaseHistory(c *gin.Context) {
	ownerID, ok := getOwnerID(c)
	if !ok {
		return
	}
	purchases, err := h.PurchaseService.ListAll(ownerID)
	if err != nil {
		respondError(c, response.CodeInternal, "error.purchase_fetch_failed", err)
		return
	}
	data, err := h.InvoiceService.RenderPurchaseHistory(h.currentOwner(c, ownerID), purchases)
	if err != nil {
		respondError(c, response.CodeInternal, "error.invoice_render_failed", err)
		return
	}
	servePDF(c, "riwayat-transaksi.pdf", data)
}
