package lumiere

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

func (a *App) renderRSS(c echo.Context, courses []Course) error {
	base := a.Config.URL
	items := make([]rssItem, 0, len(courses))
	for _, course := range courses {
		pubDate := ""
		if course.CreatedAt > 0 {
			pubDate = time.Unix(course.CreatedAt, 0).UTC().Format(time.RFC1123Z)
		}
		courseURL := BuildURL(base, "course", course.ID)
		items = append(items, rssItem{
			Title:       course.Title,
			Link:        courseURL,
			Description: course.Description,
			PubDate:     pubDate,
			GUID:        courseURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       items,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
