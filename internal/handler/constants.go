// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route pattern constants for chi router registration.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"
	// RouteSuffixNew is the suffix for "new" routes.
	RouteSuffixNew = "/novo"
	// RouteSuffixEdit is the suffix for edit form routes.
	RouteSuffixEdit = "/editar"
	// RouteSuffixDelete is the suffix for delete confirmation routes.
	RouteSuffixDelete = "/excluir"
	// RouteSuffixRemove is the suffix for quote draft removal routes.
	RouteSuffixRemove = "/remover"

	// RouteParamID is the ID parameter pattern.
	RouteParamID = "/{id}"

	// RouteServices is the services page.
	RouteServices = "/servicos"
	// RouteGallery is the gallery page.
	RouteGallery = "/galeria"
	// RouteMaterials is the materials page.
	RouteMaterials = "/materiais"
	// RouteQuote is the quote request page.
	RouteQuote = "/orcamento"
	// RouteQuotePhotos is the quote photo attachment route.
	RouteQuotePhotos = RouteQuote + "/fotos"
	// RouteQuoteMaterials is the quote material selection route.
	RouteQuoteMaterials = RouteQuote + "/materiais"
	// RouteQuoteReset starts a new quote after a submission.
	RouteQuoteReset = RouteQuote + RouteSuffixNew
	// RouteContact is the contact page.
	RouteContact = "/contato"
	// RouteAbout is the about page.
	RouteAbout = "/sobre"
	// RouteBlog is the blog route.
	RouteBlog = "/blog"
	// RouteBlogPost is a single blog post.
	RouteBlogPost = RouteBlog + RouteParamID
	// RouteBlogComments receives new comments on a post.
	RouteBlogComments = RouteBlogPost + "/comentarios"
	// RouteBlogLike toggles the visitor's like on a post.
	RouteBlogLike = RouteBlogPost + "/curtir"

	// RouteLogin is the login route.
	RouteLogin = "/login"
	// RouteRegister is the registration route.
	RouteRegister = "/cadastro"
	// RouteLogout is the logout route.
	RouteLogout = "/logout"
	// RouteHealth is the health check route.
	RouteHealth = "/health"

	// RouteAdmin is the admin dashboard.
	RouteAdmin = "/admin"
	// RouteQuotes is the quotes admin route.
	RouteQuotes = "/orcamentos"
	// RouteMessages is the contact messages admin route.
	RouteMessages = "/mensagens"
	// RouteComments is the comments admin route.
	RouteComments = "/comentarios"
	// RouteUsers is the users admin route.
	RouteUsers = "/usuarios"
	// RouteSettings is the settings admin route.
	RouteSettings = "/configuracoes"
	// RouteEvents is the event journal admin route.
	RouteEvents = "/eventos"
	// RouteJobs is the scheduled jobs admin route.
	RouteJobs = "/tarefas"
	// RouteJobRun triggers a scheduled job.
	RouteJobRun = RouteJobs + "/{name}/executar"

	// RouteQuotesID is the quotes ID route pattern.
	RouteQuotesID = RouteQuotes + RouteParamID
	// RouteMessagesID is the messages ID route pattern.
	RouteMessagesID = RouteMessages + RouteParamID
	// RouteCommentsID is the comments ID route pattern.
	RouteCommentsID = RouteComments + RouteParamID
)

const (
	redirectAdmin          = RouteAdmin
	redirectAdminMaterials = RouteAdmin + RouteMaterials
	redirectAdminGallery   = RouteAdmin + RouteGallery
	redirectAdminServices  = RouteAdmin + RouteServices
	redirectAdminPosts     = RouteAdmin + RouteBlog
	redirectAdminQuotes    = RouteAdmin + RouteQuotes
	redirectAdminMessages  = RouteAdmin + RouteMessages
	redirectAdminComments  = RouteAdmin + RouteComments
	redirectAdminSettings  = RouteAdmin + RouteSettings
	redirectAdminEvents    = RouteAdmin + RouteEvents
	redirectAdminJobs      = RouteAdmin + RouteJobs
	redirectLogin          = RouteLogin
	redirectRegister       = RouteRegister
	redirectQuote          = RouteQuote
	redirectContact        = RouteContact

	redirectAdminQuotesID = redirectAdminQuotes + "/%d"
	redirectBlogPostID    = RouteBlog + "/%d"
)

// Utility constants used by main.go.
const (
	// UploadsDirPath is the default uploads directory path.
	UploadsDirPath = "./uploads"
	// UploadsURLPrefix is the URL prefix local uploads are served under.
	UploadsURLPrefix = "/uploads"
	// HeaderContentType is the Content-Type HTTP header name.
	HeaderContentType = "Content-Type"
)
