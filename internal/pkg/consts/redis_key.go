package consts

const (
	// PostDetailKey 文章详情缓存，后接 slug
	PostDetailKey = "post:detail:"
	// PostListKey 公开列表缓存，后接页码
	PostListKey = "post:list:"
	// AuthorPostsKey 作者主页文章缓存，后接作者邮箱
	AuthorPostsKey = "author:posts:"
	// SitemapKey 站点地图缓存
	SitemapKey = "sitemap:entries"

	// TokenBlockKey 已注销 Token 签名黑名单，后接签名
	TokenBlockKey = "token:block:"

	// NewsletterLastRunKey 上次简报发送时间
	NewsletterLastRunKey = "newsletter:last_run"
)
