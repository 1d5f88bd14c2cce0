package member

import (
	"fmt"
)

// Privilege 会員の特権ティアを表す値オブジェクト
// ティアは全順序を持つ: user < berkomunitasplus < partner < admin
type Privilege string

const (
	PrivilegeUser             Privilege = "user"             // 一般会員
	PrivilegeBerkomunitasPlus Privilege = "berkomunitasplus" // プラス会員
	PrivilegePartner          Privilege = "partner"          // パートナー
	PrivilegeAdmin            Privilege = "admin"            // 管理者
)

// privilegeRanks ティアの順位（比較用）
var privilegeRanks = map[Privilege]int{
	PrivilegeUser:             1,
	PrivilegeBerkomunitasPlus: 2,
	PrivilegePartner:          3,
	PrivilegeAdmin:            4,
}

// privilegeDisplayNames ティアの表示名
var privilegeDisplayNames = map[Privilege]string{
	PrivilegeUser:             "User",
	PrivilegeBerkomunitasPlus: "BerkomunitasPlus",
	PrivilegePartner:          "Partner",
	PrivilegeAdmin:            "Admin",
}

// NewPrivilege 新しいPrivilegeを作成
func NewPrivilege(s string) (Privilege, error) {
	p := Privilege(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid privilege: %s", s)
	}
	return p, nil
}

// String 文字列表現を返す
func (p Privilege) String() string {
	return string(p)
}

// Valid 有効な特権ティアかどうかを返す
func (p Privilege) Valid() bool {
	_, ok := privilegeRanks[p]
	return ok
}

// Rank ティアの順位を返す（未知のティアは最下位扱い）
func (p Privilege) Rank() int {
	if rank, ok := privilegeRanks[p]; ok {
		return rank
	}
	return privilegeRanks[PrivilegeUser]
}

// AtLeast 指定ティア以上かどうかを返す
func (p Privilege) AtLeast(required Privilege) bool {
	return p.Rank() >= required.Rank()
}

// DisplayName ティアの表示名を返す
func (p Privilege) DisplayName() string {
	if name, ok := privilegeDisplayNames[p]; ok {
		return name
	}
	return string(p)
}
