// Package integration contains the marketplace integration bounded context.
// Merchants connect their Etsy, Shopify or WooCommerce shops as stores and
// pull open orders from them into the platform.
//
// Key concepts:
//   - Store: a merchant's connection to one marketplace shop
//   - PlatformOrder: an order as the marketplace reports it
//   - OrderSource: port for fetching orders from a marketplace
//
// Adapters for OrderSource live in the infrastructure layer.
package integration
