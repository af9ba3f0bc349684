package handlers

import "github.com/gin-gonic/gin"

// ConfigurePaths routes on the escaped request path so product names and
// sizes containing "/" can be addressed as %2F. Path values are unescaped
// before handlers see them.
func ConfigurePaths(router *gin.Engine) {
	router.UseRawPath = true
	router.UnescapePathValues = true
}

// RegisterRoutes mounts the view API on an /api/v1 group
func RegisterRoutes(api *gin.RouterGroup, products *ProductsHandler, orders *OrdersHandler, dashboard *DashboardHandler) {
	productsGroup := api.Group("/products")
	{
		productsGroup.GET("", products.ListProducts)
		productsGroup.POST("", products.CreateProduct)
		productsGroup.GET("/export", products.ExportProducts)
		productsGroup.GET("/:category", products.ListCategory)
		productsGroup.POST("/:category/refresh", products.RefreshCategory)
		productsGroup.PATCH("/:category/:name/description", products.UpdateDescription)
		productsGroup.DELETE("/:category/:name", products.DeleteProduct)

		// Edit view
		productsGroup.GET("/:category/:name/sizes", products.OpenSizes)
		productsGroup.DELETE("/:category/:name/view", products.CloseView)
		productsGroup.POST("/:category/:name/sizes", products.AddSize)
		productsGroup.PUT("/:category/:name/sizes/:size", products.EditSize)
		productsGroup.DELETE("/:category/:name/sizes/:size", products.DeleteSize)
		productsGroup.POST("/:category/:name/sizes/:size/select", products.SelectSize)
	}

	ordersGroup := api.Group("/orders")
	{
		ordersGroup.GET("", orders.ListOrders)
		ordersGroup.POST("/refresh", orders.RefreshOrders)
		ordersGroup.POST("/:id/approve", orders.ApproveOrder)
		ordersGroup.POST("/:id/reject", orders.RejectOrder)
		ordersGroup.POST("/:id/ship", orders.ShipOrder)
		ordersGroup.GET("/:id/packing-slip", orders.PackingSlip)
	}

	api.GET("/dashboard", dashboard.GetDashboard)
}
