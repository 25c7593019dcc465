package youtube

import "errors"

var ErrEmptyChannelID = errors.New("empty channel id")

const feedURLPrefix = "https://www.youtube.com/feeds/videos.xml?channel_id="

// FeedURL interpolates the id verbatim, it is URL-safe by construction
func FeedURL(channelID string) (string, error) {
	if channelID == "" {
		return "", ErrEmptyChannelID
	}
	return feedURLPrefix + channelID, nil
}
