package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/guedes-jr/delizandra-storefront/internal/catalog"
	"github.com/guedes-jr/delizandra-storefront/internal/domain"
	cartsvc "github.com/guedes-jr/delizandra-storefront/internal/service/cart"
	"github.com/guedes-jr/delizandra-storefront/internal/storefront"
)

// Customer-facing fallback messages, used when the upstream response carries
// no detail.
const (
	msgListFailed     = "Falha ao listar produtos."
	msgBuyNowFailed   = "Não foi possível iniciar a compra agora."
	msgReviewFailed   = "Falha ao enviar depoimento."
	msgCheckoutFailed = "Erro no checkout."
	msgReviewThanks   = "Obrigado! Seu depoimento foi registrado."
	msgNoOpenProduct  = "Nenhum produto aberto."
)

type handlers struct {
	catalog *catalog.Client
	carts   *cartsvc.Service
	flows   *flowRegistry
	logger  *log.Logger
}

func respondError(c *gin.Context, status int, detail string) {
	c.JSON(status, gin.H{"detail": detail})
}

// upstreamStatus maps a failed catalog call to a response code: the upstream
// code when we have one, 502 for transport failures.
func upstreamStatus(err error) int {
	var cerr *catalog.Error
	if errors.As(err, &cerr) {
		return cerr.Status
	}
	return http.StatusBadGateway
}

// ---- listing ----

func (h *handlers) listProducts(c *gin.Context) {
	l := h.flows.listing(sessionID(c), h.catalog)
	if err := l.Search(c.Request.Context(), c.Query("q"), c.Query("category")); err != nil {
		h.logger.Printf("list products: %v", err)
		respondError(c, upstreamStatus(err), storefront.UserMessage(err, msgListFailed))
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": l.Products(), "hasMore": l.HasMore()})
}

func (h *handlers) loadMoreProducts(c *gin.Context) {
	l := h.flows.listing(sessionID(c), h.catalog)
	if err := l.LoadMore(c.Request.Context()); err != nil {
		h.logger.Printf("load more products: %v", err)
		// Pages already loaded stay visible alongside the error.
		c.JSON(upstreamStatus(err), gin.H{
			"detail":  storefront.UserMessage(err, msgListFailed),
			"results": l.Products(),
			"hasMore": l.HasMore(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": l.Products(), "hasMore": l.HasMore()})
}

// ---- product detail flow ----

func detailView(s *storefront.Session) gin.H {
	g := s.Gallery()
	return gin.H{
		"product": s.Product(),
		"gallery": gin.H{
			"images":      g.Images(),
			"index":       g.Index(),
			"current":     g.Current(),
			"canNavigate": g.CanNavigate(),
		},
		"quantity":  s.Quantity(),
		"unitPrice": s.UnitPrice(),
		"subtotal":  s.Subtotal(),
		"reviews":   s.Reviews(),
		"summary":   s.Summary(),
	}
}

func (h *handlers) openDetail(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "id inválido")
		return
	}
	product, err := h.catalog.GetProduct(c.Request.Context(), productID)
	if err != nil {
		h.logger.Printf("open detail %d: %v", productID, err)
		respondError(c, upstreamStatus(err), storefront.UserMessage(err, msgListFailed))
		return
	}
	store, err := h.carts.Attach(c.Request.Context(), sessionID(c))
	if err != nil {
		h.logger.Printf("attach cart: %v", err)
		respondError(c, http.StatusInternalServerError, msgListFailed)
		return
	}
	sess := storefront.Open(c.Request.Context(), h.catalog, store, *product)
	h.flows.setDetail(sessionID(c), sess)
	c.JSON(http.StatusOK, detailView(sess))
}

func (h *handlers) getDetail(c *gin.Context) {
	sess, ok := h.flows.detail(sessionID(c))
	if !ok {
		respondError(c, http.StatusNotFound, msgNoOpenProduct)
		return
	}
	c.JSON(http.StatusOK, detailView(sess))
}

func (h *handlers) navigateGallery(c *gin.Context) {
	sess, ok := h.flows.detail(sessionID(c))
	if !ok {
		respondError(c, http.StatusNotFound, msgNoOpenProduct)
		return
	}
	var in struct {
		Action string  `json:"action"`
		Index  int     `json:"index"`
		DX     float64 `json:"dx"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "corpo inválido")
		return
	}
	g := sess.Gallery()
	switch in.Action {
	case "next":
		g.Next()
	case "previous":
		g.Previous()
	case "select":
		g.Select(in.Index)
	case "swipe":
		g.Swipe(in.DX)
	default:
		respondError(c, http.StatusBadRequest, "ação desconhecida")
		return
	}
	c.JSON(http.StatusOK, detailView(sess))
}

func (h *handlers) setQuantity(c *gin.Context) {
	sess, ok := h.flows.detail(sessionID(c))
	if !ok {
		respondError(c, http.StatusNotFound, msgNoOpenProduct)
		return
	}
	var in struct {
		Action string `json:"action"`
		Value  string `json:"value"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "corpo inválido")
		return
	}
	switch in.Action {
	case "increment":
		sess.Increment()
	case "decrement":
		sess.Decrement()
	case "set":
		sess.SetQuantityInput(in.Value)
	default:
		respondError(c, http.StatusBadRequest, "ação desconhecida")
		return
	}
	c.JSON(http.StatusOK, detailView(sess))
}

func (h *handlers) addDetailToCart(c *gin.Context) {
	sid := sessionID(c)
	sess, ok := h.flows.detail(sid)
	if !ok {
		respondError(c, http.StatusNotFound, msgNoOpenProduct)
		return
	}
	if err := sess.AddToCart(); err != nil {
		respondError(c, http.StatusConflict, storefront.UserMessage(err, msgNoOpenProduct))
		return
	}
	h.flows.closeDetail(sid)
	view, err := h.carts.SyncStore(c.Request.Context(), sid, sess.Store())
	if err != nil {
		h.logger.Printf("persist cart: %v", err)
		respondError(c, http.StatusInternalServerError, msgCheckoutFailed)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) buyNow(c *gin.Context) {
	sid := sessionID(c)
	sess, ok := h.flows.detail(sid)
	if !ok {
		respondError(c, http.StatusNotFound, msgNoOpenProduct)
		return
	}
	link, err := sess.BuyNow(c.Request.Context())
	if err != nil {
		if errors.Is(err, storefront.ErrRequestInFlight) {
			respondError(c, http.StatusConflict, storefront.UserMessage(err, msgBuyNowFailed))
			return
		}
		h.logger.Printf("buy now: %v", err)
		respondError(c, upstreamStatus(err), storefront.UserMessage(err, msgBuyNowFailed))
		return
	}
	h.flows.closeDetail(sid)
	c.JSON(http.StatusOK, gin.H{"whatsapp_link": link.WhatsAppLink, "total": link.Total})
}

func (h *handlers) submitReview(c *gin.Context) {
	sess, ok := h.flows.detail(sessionID(c))
	if !ok {
		respondError(c, http.StatusNotFound, msgNoOpenProduct)
		return
	}
	var in struct {
		Name    string `json:"name"`
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "corpo inválido")
		return
	}
	created, err := sess.SubmitReview(c.Request.Context(), in.Name, in.Rating, in.Comment)
	if err != nil {
		switch {
		case errors.Is(err, storefront.ErrNameRequired), errors.Is(err, storefront.ErrInvalidRating):
			respondError(c, http.StatusBadRequest, storefront.UserMessage(err, msgReviewFailed))
		case errors.Is(err, storefront.ErrRequestInFlight):
			respondError(c, http.StatusConflict, storefront.UserMessage(err, msgReviewFailed))
		default:
			h.logger.Printf("submit review: %v", err)
			respondError(c, upstreamStatus(err), storefront.UserMessage(err, msgReviewFailed))
		}
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"review":  created,
		"summary": sess.Summary(),
		"notice":  msgReviewThanks,
	})
}

func (h *handlers) closeDetail(c *gin.Context) {
	h.flows.closeDetail(sessionID(c))
	c.Status(http.StatusNoContent)
}

// ---- cart ----

func (h *handlers) getCart(c *gin.Context) {
	view, err := h.carts.Get(c.Request.Context(), sessionID(c))
	if err != nil {
		h.logger.Printf("get cart: %v", err)
		respondError(c, http.StatusInternalServerError, msgCheckoutFailed)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) addCartItem(c *gin.Context) {
	var in cartsvc.AddInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "corpo inválido")
		return
	}
	view, err := h.carts.AddItem(c.Request.Context(), sessionID(c), in)
	if err != nil {
		h.logger.Printf("add cart item: %v", err)
		respondError(c, http.StatusInternalServerError, msgCheckoutFailed)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) updateCartItem(c *gin.Context) {
	var in struct {
		Key      domain.ItemKey `json:"key"`
		Quantity int            `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "corpo inválido")
		return
	}
	view, err := h.carts.UpdateQuantity(c.Request.Context(), sessionID(c), in.Key, in.Quantity)
	if err != nil {
		h.logger.Printf("update cart item: %v", err)
		respondError(c, http.StatusInternalServerError, msgCheckoutFailed)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) removeCartItem(c *gin.Context) {
	productID, err := strconv.ParseInt(c.Query("productId"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "productId inválido")
		return
	}
	key := domain.ItemKey{ProductID: productID, VariantKey: c.Query("variantKey")}
	view, err := h.carts.RemoveItem(c.Request.Context(), sessionID(c), key)
	if err != nil {
		h.logger.Printf("remove cart item: %v", err)
		respondError(c, http.StatusInternalServerError, msgCheckoutFailed)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) clearCart(c *gin.Context) {
	view, err := h.carts.Clear(c.Request.Context(), sessionID(c))
	if err != nil {
		h.logger.Printf("clear cart: %v", err)
		respondError(c, http.StatusInternalServerError, msgCheckoutFailed)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *handlers) checkout(c *gin.Context) {
	sid := sessionID(c)
	var in struct {
		CustomerName  string `json:"customer_name"`
		CustomerPhone string `json:"customer_phone"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, http.StatusBadRequest, "corpo inválido")
		return
	}
	store, err := h.carts.Attach(c.Request.Context(), sid)
	if err != nil {
		h.logger.Printf("attach cart: %v", err)
		respondError(c, http.StatusInternalServerError, msgCheckoutFailed)
		return
	}
	link, err := storefront.CheckoutCart(c.Request.Context(), h.catalog, store, in.CustomerName, in.CustomerPhone)
	if err != nil {
		if errors.Is(err, storefront.ErrEmptyCart) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Printf("checkout: %v", err)
		respondError(c, upstreamStatus(err), storefront.UserMessage(err, msgCheckoutFailed))
		return
	}
	// Checkout completion is the one flow that clears the cart.
	if _, err := h.carts.Clear(c.Request.Context(), sid); err != nil {
		h.logger.Printf("clear cart after checkout: %v", err)
	}
	c.JSON(http.StatusCreated, gin.H{"whatsapp_link": link.WhatsAppLink, "total": link.Total})
}
