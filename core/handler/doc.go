// Package handler defines the request-handling primitives shared by the
// serving chains: the Response render function, the declining Stage, and
// combinators to compose stages and middleware into an http.Handler.
//
// A Stage either answers a request by returning a Response or declines by
// returning nil. Chains are built with First, which tries stages in order
// and short-circuits on the first non-nil Response:
//
//	chain := handler.First(indexStage, fileStage, resourceStage)
//	h := handler.Chain(chain, notFound)
//
// The terminal Response passed to Chain guarantees that every request is
// answered even when all stages decline.
package handler
