package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"account-manager/internal/model"
	"account-manager/internal/pkg/config"
	"account-manager/internal/pkg/crypto"
	"account-manager/internal/pkg/database"
	"account-manager/internal/pkg/logger"
	"account-manager/pkg/constants"
)

var (
	configFile  = flag.String("config", "configs/config.yaml", "服务配置文件路径")
	mappingFile = flag.String("mapping", "configs/importer.yaml", "导入映射配置文件路径")
)

// Mapping CSV导入映射配置
type Mapping struct {
	DateLayout string        `yaml:"date_layout"` // 源表日期格式, Go layout写法
	Ems        EmsMapping    `yaml:"ems"`
	Server     ServerMapping `yaml:"server"`
	Users      []SeedUser    `yaml:"users"`
}

// EmsMapping EMS账号表的列映射
type EmsMapping struct {
	File       string           `yaml:"file"`
	HeaderRows int              `yaml:"header_rows"`
	Columns    map[string]int   `yaml:"columns"` // equipment_group/system_name/region/ip_url
	Roles      []EmsRoleMapping `yaml:"roles"`
}

// EmsRoleMapping 单个角色账号占三列: ID、口令、变更日期
type EmsRoleMapping struct {
	Role    string `yaml:"role"`
	ID      int    `yaml:"id"`
	PW      int    `yaml:"pw"`
	ModDate int    `yaml:"mod_date"`
}

// ServerMapping 服务器安全管理表的列映射
type ServerMapping struct {
	File       string         `yaml:"file"`
	HeaderRows int            `yaml:"header_rows"` // 字段名取最后一行表头
	Columns    map[string]int `yaml:"columns"`
	// ChecklistStart 起该列及之后均为合规检查项, 项名取表头
	ChecklistStart int `yaml:"checklist_start"`
}

// SeedUser 初始用户
type SeedUser struct {
	Username          string   `yaml:"username"`
	Password          string   `yaml:"password"`
	FullName          string   `yaml:"full_name"`
	Team              string   `yaml:"team"`
	IsSecurityManager bool     `yaml:"is_security_manager"`
	EquipmentGroups   []string `yaml:"equipment_groups"`
}

func main() {
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Printf("加载配置失败: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Log); err != nil {
		fmt.Printf("初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Close()
	}()

	mapping, err := loadMapping(*mappingFile)
	if err != nil {
		logger.Fatal("加载映射配置失败", zap.Error(err))
	}

	if cfg.Crypto.AESKey == "" {
		logger.Fatal("crypto.aes_key 未配置, 请先启动服务生成密钥或手动配置")
	}
	cipher, err := crypto.NewCipherFromBase64(cfg.Crypto.AESKey)
	if err != nil {
		logger.Fatal("初始化加密器失败", zap.Error(err))
	}

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("初始化数据库失败", zap.Error(err))
	}
	defer func() {
		_ = database.Close()
	}()

	if err := database.Migrate(
		&model.User{},
		&model.UserEquipmentAssignment{},
		&model.Credential{},
		&model.EmsSystem{},
		&model.EmsCredential{},
		&model.ServerSecurityInfo{},
		&model.SecurityChecklistItem{},
	); err != nil {
		logger.Fatal("同步表结构失败", zap.Error(err))
	}

	imp := &importer{cipher: cipher, mapping: mapping}

	// 整体导入在同一事务中, 任一步失败则全部回滚
	err = database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := imp.importEmsAccounts(tx); err != nil {
			return err
		}
		if err := imp.importServerSecurity(tx); err != nil {
			return err
		}
		return imp.seedUsers(tx)
	})
	if err != nil {
		logger.Fatal("数据导入失败, 已全部回滚", zap.Error(err))
	}

	logger.Info("数据导入完成",
		zap.Int("ems_systems", imp.emsSystems),
		zap.Int("ems_credentials", imp.emsCredentials),
		zap.Int("servers", imp.servers),
		zap.Int("checklist_items", imp.checklistItems),
		zap.Int("users", imp.users),
	)
}

type importer struct {
	cipher  *crypto.Cipher
	mapping *Mapping

	emsSystems     int
	emsCredentials int
	servers        int
	checklistItems int
	users          int
}

// importEmsAccounts 导入EMS系统与账号
func (imp *importer) importEmsAccounts(tx *gorm.DB) error {
	m := imp.mapping.Ems
	records, err := readCSV(m.File)
	if err != nil {
		logger.Warn("EMS账号表不存在, 跳过", zap.String("file", m.File), zap.Error(err))
		return nil
	}
	if len(records) <= m.HeaderRows {
		return nil
	}

	for _, row := range records[m.HeaderRows:] {
		systemName := cell(row, m.Columns["system_name"])
		if systemName == "" {
			continue
		}

		system := &model.EmsSystem{
			EquipmentGroup: cell(row, m.Columns["equipment_group"]),
			SystemName:     systemName,
			Region:         cell(row, m.Columns["region"]),
			IPURL:          cell(row, m.Columns["ip_url"]),
		}
		if err := tx.Create(system).Error; err != nil {
			return fmt.Errorf("创建EMS系统 %s 失败: %w", systemName, err)
		}
		imp.emsSystems++

		for _, role := range m.Roles {
			pw := cell(row, role.PW)
			if pw == "" {
				continue
			}

			// 标记为每月自动变更的口令以当月口令入库
			autoRotate := strings.Contains(pw, constants.AutoRotateMarker)
			if autoRotate {
				pw = monthlyPassword(time.Now())
			}

			enc, err := imp.cipher.Encrypt(pw)
			if err != nil {
				return fmt.Errorf("加密EMS账号口令失败: %w", err)
			}

			cred := &model.EmsCredential{
				SystemID:          system.ID,
				Role:              model.EmsCredentialRole(role.Role),
				Username:          cell(row, role.ID),
				EncryptedPassword: enc,
				AutoRotate:        autoRotate,
				LastModified:      imp.parseDate(cell(row, role.ModDate)),
			}
			if err := tx.Create(cred).Error; err != nil {
				return fmt.Errorf("创建EMS账号失败: %w", err)
			}
			imp.emsCredentials++
		}
	}
	return nil
}

// importServerSecurity 导入服务器安全管理信息与合规检查项
func (imp *importer) importServerSecurity(tx *gorm.DB) error {
	m := imp.mapping.Server
	records, err := readCSV(m.File)
	if err != nil {
		logger.Warn("服务器安全管理表不存在, 跳过", zap.String("file", m.File), zap.Error(err))
		return nil
	}
	if len(records) <= m.HeaderRows {
		return nil
	}

	// 检查项名称取最后一行表头
	header := records[m.HeaderRows-1]

	for _, row := range records[m.HeaderRows:] {
		managementID := cell(row, m.Columns["management_id"])
		if managementID == "" {
			continue
		}

		server := &model.ServerSecurityInfo{
			ManagementID:         managementID,
			ServerName:           cell(row, m.Columns["server_name"]),
			Hostname:             cell(row, m.Columns["hostname"]),
			Region:               cell(row, m.Columns["region"]),
			IPAddress:            cell(row, m.Columns["ip_address"]),
			SgwAccountManagement: cell(row, m.Columns["sgw_account_management"]),
			PrimaryAccountID:     cellPtr(row, m.Columns["primary_account_id"]),
			RootAccountID:        cellPtr(row, m.Columns["root_account_id"]),
			Vendor:               cell(row, m.Columns["vendor"]),
			OSType:               cell(row, m.Columns["os_type"]),
			OSVersion:            cell(row, m.Columns["os_version"]),
			HWModel:              cell(row, m.Columns["hw_model"]),
			ManagementTeam:       cell(row, m.Columns["management_team"]),
		}

		// 口令槽位为空则不加密不入库
		if pw := cell(row, m.Columns["primary_account_pw"]); pw != "" {
			enc, err := imp.cipher.Encrypt(pw)
			if err != nil {
				return fmt.Errorf("加密服务器口令失败: %w", err)
			}
			server.EncryptedPrimaryAccountPw = &enc
		}
		if pw := cell(row, m.Columns["root_account_pw"]); pw != "" {
			enc, err := imp.cipher.Encrypt(pw)
			if err != nil {
				return fmt.Errorf("加密服务器口令失败: %w", err)
			}
			server.EncryptedRootAccountPw = &enc
		}

		if err := tx.Create(server).Error; err != nil {
			return fmt.Errorf("创建服务器 %s 失败: %w", managementID, err)
		}
		imp.servers++

		for col := m.ChecklistStart; col < len(header); col++ {
			status := cell(row, col)
			if status == "" {
				continue
			}
			item := &model.SecurityChecklistItem{
				ServerID:   server.ID,
				ItemName:   strings.TrimSpace(header[col]),
				ItemStatus: status,
			}
			if err := tx.Create(item).Error; err != nil {
				return fmt.Errorf("创建检查项失败: %w", err)
			}
			imp.checklistItems++
		}
	}
	return nil
}

// seedUsers 创建初始用户, 已存在的跳过
func (imp *importer) seedUsers(tx *gorm.DB) error {
	for _, seed := range imp.mapping.Users {
		var count int64
		if err := tx.Model(&model.User{}).Where("username = ?", seed.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			logger.Info("用户已存在, 跳过", zap.String("username", seed.Username))
			continue
		}

		hash, err := crypto.HashPassword(seed.Password)
		if err != nil {
			return fmt.Errorf("哈希用户口令失败: %w", err)
		}

		user := &model.User{
			Username:          seed.Username,
			Password:          hash,
			FullName:          seed.FullName,
			Team:              seed.Team,
			IsSecurityManager: seed.IsSecurityManager,
			AuthProvider:      constants.AuthTypeLocal,
		}
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("创建用户 %s 失败: %w", seed.Username, err)
		}

		for _, group := range seed.EquipmentGroups {
			assignment := &model.UserEquipmentAssignment{
				UserID:         user.ID,
				EquipmentGroup: group,
			}
			if err := tx.Create(assignment).Error; err != nil {
				return fmt.Errorf("创建装备组分配失败: %w", err)
			}
		}
		imp.users++
	}
	return nil
}

func (imp *importer) parseDate(s string) datatypes.Date {
	if s == "" {
		return datatypes.Date{}
	}
	layout := imp.mapping.DateLayout
	if layout == "" {
		layout = "06.01.02"
	}
	t, err := time.Parse(layout, s)
	if err != nil {
		return datatypes.Date{}
	}
	return datatypes.Date(t)
}

// monthlyPassword 当月口令, 形如 암호_2508
func monthlyPassword(now time.Time) string {
	return constants.MonthlyPasswordPrefix + now.Format("0601")
}

func loadMapping(path string) (*Mapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	mapping := &Mapping{}
	if err := yaml.Unmarshal(data, mapping); err != nil {
		return nil, fmt.Errorf("解析映射配置失败: %w", err)
	}
	return mapping, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // 源表行宽不齐
	return r.ReadAll()
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func cellPtr(row []string, idx int) *string {
	v := cell(row, idx)
	if v == "" {
		return nil
	}
	return &v
}
