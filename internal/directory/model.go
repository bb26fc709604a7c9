package directory

import "encoding/xml"

const (
	AnonymousName     = "Anonymous user"
	AnonymousImageURL = "http://www.designofsignage.com/application/symbol/building/image/600x600/no-photo.jpg"
)

type User struct {
	Name     string `json:"name"`
	ImageURL string `json:"image_url"`
}

func Anonymous() User {
	return User{Name: AnonymousName, ImageURL: AnonymousImageURL}
}

// users.xml
//
//	<intranet>
//	  <server><protocol>https</protocol><host>intranet.example.com</host></server>
//	  <users><user id="10"><name>...</name><avatar>/api/images/users/10</avatar></user></users>
//	</intranet>
type document struct {
	XMLName xml.Name    `xml:"intranet"`
	Server  serverEntry `xml:"server"`
	Users   []userEntry `xml:"users>user"`
}

type serverEntry struct {
	Protocol string `xml:"protocol"`
	Host     string `xml:"host"`
}

type userEntry struct {
	ID     int    `xml:"id,attr"`
	Name   string `xml:"name"`
	Avatar string `xml:"avatar"`
}

func (s serverEntry) baseURL() string {
	return s.Protocol + "://" + s.Host
}
