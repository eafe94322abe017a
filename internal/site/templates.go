package site

import "html/template"

// 页面模板。除 Description/Comment.Text（model 里已是 template.HTML）外，
// 所有插值在此经默认上下文转义。

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<link rel="stylesheet" href="assets/style.css">
</head>
<body>
<h1>{{.Title}}</h1>
<p class="subtitle">{{.Stats.PhotoCount}} photos, {{.Stats.YearMin}}&ndash;{{.Stats.YearMax}}{{if .Subtitle}} &middot; {{.Subtitle}}{{end}} &middot; <a href="tags/">tags</a></p>
<div class="search-box"><input type="text" id="search-input" placeholder="Search titles, tags, descriptions..."></div>
<div id="search-results" style="display:none"></div>
<div class="toc">{{range .Years}}<a href="#y{{.Year}}">{{.Year}} ({{len .Photos}})</a>{{end}}</div>
{{range .Years}}
<div class="year-section" id="y{{.Year}}">
<h2 class="year-header">{{.Year}} <span>{{len .Photos}} photos</span></h2>
<div class="grid">
{{range .Photos}}<a href="photos/{{.ID}}/" title="{{.Name}}" data-tags="{{.Tags}}" data-desc="{{.Desc}}" data-date="{{.Date}}"{{if .IsVideo}} class="video-badge"{{end}}><img src="photos/{{.ID}}/thumb.jpg" alt="" loading="lazy"></a>
{{end}}
</div>
</div>
{{end}}
<div class="stats">
  {{.Stats.TagCount}} tags across {{.Stats.TaggedCount}} photos.
  {{.Stats.CommentCount}} comments on {{.Stats.CommentedCount}} photos.
  {{.Stats.GeoCount}} geotagged.
</div>
<script src="assets/search.js"></script>
</body>
</html>
`))

var photoTmpl = template.Must(template.New("photo").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.P.Name}} &mdash; {{.Title}}</title>
<link rel="stylesheet" href="../../assets/style.css">
</head>
<body class="photo-page">
<div class="nav">
  <a href="../../">&larr; all photos</a>
  <a href="../../tags/">tags</a>
  {{if .PrevID}}<a href="../{{.PrevID}}/">&larr; prev</a>{{end}}
  {{if .NextID}}<a href="../{{.NextID}}/">next &rarr;</a>{{end}}
</div>

<h1>{{.P.Name}}</h1>
<div class="date">{{.P.DateTaken}}</div>

<div class="media">
{{if .P.IsVideo}}
  <video controls preload="metadata">
    <source src="original{{.P.Ext}}">
    Your browser doesn't support this video format.
  </video>
{{else}}
  <img src="original{{.P.Ext}}" alt="{{.P.Name}}">
{{end}}
</div>

{{if .P.Description}}<div class="description">{{.P.Description}}</div>{{end}}

{{if .P.Tags}}<div class="tags">{{range .P.Tags}}<a href="../../tags/{{.Tag}}/">{{.Tag}}</a>{{end}}</div>{{end}}

{{if .P.Notes}}
<div class="notes">
  <strong>Notes:</strong>
  {{range $i, $n := .P.Notes}}{{if $i}}, {{end}}<em>"{{$n.Text}}"</em>{{end}}
</div>
{{end}}

{{if .Lat}}
<div class="meta">
  lat {{.Lat}}, lon {{.Lon}}
</div>
{{end}}

{{if .P.Comments}}
<div class="comments">
  <strong>Comments ({{len .P.Comments}}):</strong>
  {{range .P.Comments}}
  <div class="comment">
    <div>{{.Text}}</div>
    <div class="comment-date">{{.Date}} &middot; {{.User}}</div>
  </div>
  {{end}}
</div>
{{end}}

<div class="meta">
  {{.P.CountViews}} views &middot; {{.P.CountFaves}} faves &middot; {{.P.License}}
  <br><a href="{{.P.PhotoPage}}">View at the original service</a>
</div>

{{if .P.IsVideo}}
<div class="original-link">
  <a href="original{{.P.Ext}}" download>Download original video</a>
</div>
{{end}}

</body>
</html>
`))

var tagIndexTmpl = template.Must(template.New("tagindex").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Tags &mdash; {{.Title}}</title>
<link rel="stylesheet" href="../assets/style.css">
</head>
<body>
<div class="nav"><a href="../">&larr; all photos</a></div>
<h1>Tags</h1>
<p class="subtitle">{{len .Tags}} tags across {{.TaggedCount}} tagged photos</p>
<div class="tag-list">
{{range .Tags}}<a href="{{.Name}}/">{{.Name}} <span class="count">({{.Count}})</span></a>{{end}}
</div>
</body>
</html>
`))

var tagPageTmpl = template.Must(template.New("tagpage").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Tag}} &mdash; {{.Title}}</title>
<link rel="stylesheet" href="../../assets/style.css">
</head>
<body>
<div class="nav"><a href="../../">&larr; all photos</a> <a href="../">all tags</a></div>
<h1>{{.Tag}}</h1>
<p class="subtitle">{{len .Photos}} photos</p>
<div class="grid">
{{range .Photos}}<a href="../../photos/{{.ID}}/" title="{{.Name}}"{{if .IsVideo}} class="video-badge"{{end}}><img src="../../photos/{{.ID}}/thumb.jpg" alt="" loading="lazy"></a>
{{end}}
</div>
</body>
</html>
`))
