package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultLocale 默认语言
const DefaultLocale = "en-US"

// 支持的语言列表（收银台原始界面为印尼语）
var supportedLocales = []string{"en-US", "id-ID"}

var catalogs = map[string]map[string]string{
	"en-US": {
		"error.bad_request":                "invalid request payload",
		"error.unauthorized":               "authentication required",
		"error.forbidden":                  "access denied",
		"error.not_found":                  "resource not found",
		"error.internal":                   "internal server error",
		"error.auth_header_missing":        "authorization header missing",
		"error.auth_header_invalid":        "authorization header invalid",
		"error.token_invalid":              "token invalid or expired",
		"error.jwt_secret_missing":         "jwt secret not configured",
		"error.login_failed":               "email or password incorrect",
		"error.login_too_many":             "too many login attempts, retry in %d seconds",
		"error.rate_limited":               "too many requests, retry in %d seconds",
		"error.rate_limit_unavailable":     "rate limiter unavailable",
		"error.owner_id_invalid":           "owner identity invalid",
		"error.owner_id_type_invalid":      "owner identity malformed",
		"error.product_not_available":      "product not found or unavailable",
		"error.product_not_found":          "product not found",
		"error.product_invalid":            "product payload invalid",
		"error.out_of_stock":               "product is out of stock",
		"error.stock_limited":              "no more stock available",
		"error.cart_item_not_found":        "item is not in the cart",
		"error.cart_empty":                 "cart is empty",
		"error.payment_method_unsupported": "only cash payment is currently available",
		"error.purchase_not_found":         "purchase not found",
		"error.no_purchases_selected":      "no purchases selected",
		"error.cart_fetch_failed":          "failed to load cart",
		"error.cart_update_failed":         "failed to update cart",
		"error.checkout_failed":            "failed to complete checkout",
		"error.product_fetch_failed":       "failed to load products",
		"error.product_save_failed":        "failed to save product",
		"error.purchase_fetch_failed":      "failed to load purchases",
		"error.purchase_update_failed":     "failed to update purchase",
		"error.invoice_render_failed":      "failed to render invoice",
		"error.dashboard_failed":           "failed to load dashboard",
		"error.preference_failed":          "failed to load preferences",

		"notify.added_to_cart":     "Product added to cart.",
		"notify.quantity_added":    "Quantity increased.",
		"notify.stock_remaining":   "Remaining stock: %d.",
		"notify.cart_adjusted":     "Some cart quantities were adjusted to the available stock.",
		"notify.cart_pruned":       "Some items in your cart are no longer available and have been removed.",
		"notify.checkout_success":  "The customer order has been processed successfully.",
		"notify.out_of_stock_body": "This product is currently unavailable.",
	},
	"id-ID": {
		"error.bad_request":                "permintaan tidak valid",
		"error.unauthorized":               "autentikasi diperlukan",
		"error.forbidden":                  "akses ditolak",
		"error.not_found":                  "data tidak ditemukan",
		"error.internal":                   "terjadi kesalahan pada server",
		"error.auth_header_missing":        "header otorisasi tidak ada",
		"error.auth_header_invalid":        "header otorisasi tidak valid",
		"error.token_invalid":              "token tidak valid atau kedaluwarsa",
		"error.jwt_secret_missing":         "jwt secret belum dikonfigurasi",
		"error.login_failed":               "email atau kata sandi salah",
		"error.login_too_many":             "terlalu banyak percobaan login, coba lagi dalam %d detik",
		"error.rate_limited":               "terlalu banyak permintaan, coba lagi dalam %d detik",
		"error.rate_limit_unavailable":     "pembatas laju tidak tersedia",
		"error.owner_id_invalid":           "identitas pemilik tidak valid",
		"error.owner_id_type_invalid":      "identitas pemilik rusak",
		"error.product_not_available":      "Produk tidak ditemukan atau tidak tersedia.",
		"error.product_not_found":          "produk tidak ditemukan",
		"error.product_invalid":            "data produk tidak valid",
		"error.out_of_stock":               "Stok habis.",
		"error.stock_limited":              "Stok sudah habis.",
		"error.cart_item_not_found":        "produk tidak ada di keranjang",
		"error.cart_empty":                 "Keranjang kosong!",
		"error.payment_method_unsupported": "Saat ini hanya pembayaran tunai yang tersedia.",
		"error.purchase_not_found":         "transaksi tidak ditemukan",
		"error.no_purchases_selected":      "tidak ada transaksi yang dipilih",
		"error.cart_fetch_failed":          "gagal memuat keranjang",
		"error.cart_update_failed":         "gagal memperbarui keranjang",
		"error.checkout_failed":            "gagal menyelesaikan pembayaran",
		"error.product_fetch_failed":       "gagal memuat produk",
		"error.product_save_failed":        "gagal menyimpan produk",
		"error.purchase_fetch_failed":      "gagal memuat riwayat pembelian",
		"error.purchase_update_failed":     "gagal memperbarui transaksi",
		"error.invoice_render_failed":      "gagal membuat faktur",
		"error.dashboard_failed":           "gagal memuat dasbor",
		"error.preference_failed":          "gagal memuat preferensi",

		"notify.added_to_cart":     "Produk ditambahkan ke keranjang.",
		"notify.quantity_added":    "Jumlah ditambah.",
		"notify.stock_remaining":   "Sisa stok: %d.",
		"notify.cart_adjusted":     "Beberapa jumlah di keranjang disesuaikan dengan stok yang tersedia.",
		"notify.cart_pruned":       "Beberapa produk di keranjang sudah tidak tersedia dan telah dihapus.",
		"notify.checkout_success":  "Pesanan pelanggan telah berhasil diproses.",
		"notify.out_of_stock_body": "Produk ini sedang tidak tersedia.",
	},
}

// T 按语言取文案；缺失时回退默认语言，再回退 key 本身
func T(locale, key string) string {
	if catalog, ok := catalogs[normalizeLocale(locale)]; ok {
		if msg, ok := catalog[key]; ok {
			return msg
		}
	}
	if msg, ok := catalogs[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 按语言取文案并格式化参数
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// ResolveLocale 解析请求语言：优先 query 参数 locale，其次 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if locale := normalizeLocale(c.Query("locale")); locale != "" && isSupported(locale) {
		return locale
	}
	header := c.GetHeader("Accept-Language")
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if locale := normalizeLocale(tag); isSupported(locale) {
			return locale
		}
	}
	return DefaultLocale
}

func normalizeLocale(locale string) string {
	trimmed := strings.TrimSpace(locale)
	if trimmed == "" {
		return ""
	}
	lower := strings.ToLower(trimmed)
	switch {
	case strings.HasPrefix(lower, "id"):
		return "id-ID"
	case strings.HasPrefix(lower, "en"):
		return "en-US"
	}
	return trimmed
}

func isSupported(locale string) bool {
	for _, candidate := range supportedLocales {
		if candidate == locale {
			return true
		}
	}
	return false
}
